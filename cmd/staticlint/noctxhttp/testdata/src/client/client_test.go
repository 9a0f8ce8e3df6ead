package client

import "net/http"

func fetchInTest(url string) {
	resp, err := http.Get(url)
	if err == nil {
		resp.Body.Close()
	}
}
