package predictor

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"go.uber.org/zap"
)

// NewProxy проксирует локальный /predict на бэкенд, чтобы браузерный
// клиент обращался к нему с того же origin.
func NewProxy(endpoint string, logger *zap.Logger) (http.Handler, error) {
	target, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse predict endpoint: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("predict endpoint %q must be absolute", endpoint)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.Out.URL.Path = target.Path
			r.Out.URL.RawPath = target.RawPath
			r.Out.URL.RawQuery = target.RawQuery
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("predict proxy failed", zap.String("target", endpoint), zap.Error(err))
			http.Error(w, "Bad Gateway", http.StatusBadGateway)
		},
	}, nil
}
