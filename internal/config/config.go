package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Totarae/phishcheck/internal/locale"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	ErrReadConfig  = errors.New("не удалось прочитать файл конфигурации")
	ErrParseConfig = errors.New("ошибка разбора конфигурации")
)

// Config хранит конфигурацию приложения
type Config struct {
	ServerAddress  string        `mapstructure:"server_address"`
	PredictURL     string        `mapstructure:"predict_url"`
	PredictTimeout time.Duration `mapstructure:"predict_timeout"`
	Language       string        `mapstructure:"ui_language"`
	StrictResults  bool          `mapstructure:"strict_results"`
	SafeLabels     []string      `mapstructure:"safe_labels"`
	JournalPath    string        `mapstructure:"journal_path"`
	JournalDSN     string        `mapstructure:"journal_dsn"`
	SessionKey     string        `mapstructure:"session_key"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	SessionLimit   int           `mapstructure:"session_limit"`
	StaticDir      string        `mapstructure:"static_dir"`
	ProxyPredict   bool          `mapstructure:"proxy_predict"`
	LogLevel       string        `mapstructure:"log_level"`
	Debug          bool          `mapstructure:"debug"`
}

// ключ viper -> имя флага
var flagKeys = map[string]string{
	"SERVER_ADDRESS":  "address",
	"PREDICT_URL":     "predict-url",
	"PREDICT_TIMEOUT": "predict-timeout",
	"UI_LANGUAGE":     "lang",
	"STRICT_RESULTS":  "strict",
	"SAFE_LABELS":     "safe-labels",
	"JOURNAL_PATH":    "journal",
	"JOURNAL_DSN":     "journal-dsn",
	"SESSION_KEY":     "session-key",
	"SESSION_TTL":     "session-ttl",
	"SESSION_LIMIT":   "session-limit",
	"STATIC_DIR":      "static-dir",
	"PROXY_PREDICT":   "proxy-predict",
	"LOG_LEVEL":       "log-level",
	"DEBUG":           "debug",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", "localhost:8080") // Значения по умолчанию
	v.SetDefault("PREDICT_URL", "http://localhost:5000/predict")
	v.SetDefault("PREDICT_TIMEOUT", "0s")
	v.SetDefault("UI_LANGUAGE", "id")
	v.SetDefault("STRICT_RESULTS", false)
	v.SetDefault("SAFE_LABELS", "Aman,Safe")
	v.SetDefault("JOURNAL_PATH", "")
	v.SetDefault("JOURNAL_DSN", "")
	v.SetDefault("SESSION_KEY", "")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("SESSION_LIMIT", 10000)
	v.SetDefault("STATIC_DIR", "")
	v.SetDefault("PROXY_PREDICT", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEBUG", false)
}

// AddFlags регистрирует флаги конфигурации. Значения по умолчанию во флагах
// не задаются: их даёт viper, иначе флаг перекрыл бы окружение.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to JSON or YAML config file")
	fs.StringP("address", "a", "", "server address")
	fs.StringP("predict-url", "p", "", "prediction endpoint URL")
	fs.Duration("predict-timeout", 0, "prediction request timeout (0 = none)")
	fs.StringP("lang", "l", "", "UI language (id, en)")
	fs.Bool("strict", false, "render unrecognized results as errors")
	fs.String("safe-labels", "", "comma-separated labels accepted as safe in strict mode")
	fs.StringP("journal", "j", "", "path to the SQLite check journal")
	fs.String("journal-dsn", "", "PostgreSQL DSN of the check journal (overrides --journal)")
	fs.String("session-key", "", "session cookie signing key")
	fs.Duration("session-ttl", 0, "idle session lifetime")
	fs.Int("session-limit", 0, "maximum number of live sessions (0 = unlimited)")
	fs.String("static-dir", "", "directory served under /static/")
	fs.Bool("proxy-predict", true, "proxy POST /predict to the prediction endpoint")
	fs.String("log-level", "", "log level")
	fs.Bool("debug", false, "development logging")
}

// NewConfig собирает конфигурацию: флаг > окружение > файл > значение по умолчанию.
// fs может быть nil.
func NewConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	configPath := v.GetString("CONFIG")
	if fs != nil {
		for key, name := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrParseConfig, err)
				}
			}
		}
		if f := fs.Lookup("config"); f != nil && f.Changed {
			configPath = f.Value.String()
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrReadConfig, configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseConfig, err)
	}
	cfg.SafeLabels = splitLabels(cfg.SafeLabels)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitLabels разбивает значения через запятую и отбрасывает пустые.
func splitLabels(raw []string) []string {
	var labels []string
	for _, item := range raw {
		for _, l := range strings.Split(item, ",") {
			if l = strings.TrimSpace(l); l != "" {
				labels = append(labels, l)
			}
		}
	}
	return labels
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	if cfg.ServerAddress == "" {
		return fmt.Errorf("адрес сервера не может быть пустым")
	}
	u, err := url.Parse(cfg.PredictURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("некорректный адрес сервиса предсказаний: %q", cfg.PredictURL)
	}
	if cfg.PredictTimeout < 0 {
		return fmt.Errorf("таймаут запроса не может быть отрицательным")
	}
	if cfg.SessionTTL < 0 {
		return fmt.Errorf("время жизни сессии не может быть отрицательным")
	}
	if _, err := locale.Parse(cfg.Language); err != nil {
		return fmt.Errorf("язык интерфейса: %w", err)
	}
	return nil
}
