package client

import (
	"context"
	"net/http"
	"strings"
)

func fetch(ctx context.Context, c *http.Client, url string) error {
	resp, err := http.Get(url) // want `net/http.Get без context, используйте http.NewRequestWithContext`
	if err != nil {
		return err
	}
	resp.Body.Close()

	resp, err = c.Post(url, "application/json", strings.NewReader("{}")) // want `\(\*net/http.Client\).Post без context`
	if err != nil {
		return err
	}
	resp.Body.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	resp, err = c.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
