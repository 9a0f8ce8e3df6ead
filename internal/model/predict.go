package model

// PredictRequest представляет тело запроса к бэкенду предсказаний.
type PredictRequest struct {
	URL string `json:"url"`
}

// PredictResponse представляет ответ бэкенда.
// Заполнено либо Result, либо Error; пустой объект тоже допустим.
type PredictResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// LabelPhishing - единственное значение result, означающее фишинг.
const LabelPhishing = "Phishing"
