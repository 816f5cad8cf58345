package api

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const probeTimeout = 5 * time.Second

// OllamaProbe checks whether an Ollama server answers on /api/tags.
type OllamaProbe struct {
	baseURL string
	client  *http.Client
}

// NewOllamaProbe creates a probe for the server at baseURL.
func NewOllamaProbe(baseURL string, client *http.Client) *OllamaProbe {
	if client == nil {
		client = &http.Client{}
	}
	return &OllamaProbe{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (p *OllamaProbe) Probe(ctx context.Context) ProbeResponse {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	resp := ProbeResponse{OllamaURL: p.baseURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		resp.Status = "unhealthy"
		resp.Error = err.Error()
		return resp
	}

	res, err := p.client.Do(req)
	if err != nil {
		resp.Status = "unhealthy"
		resp.Error = err.Error()
		return resp
	}
	defer res.Body.Close()

	resp.StatusCode = res.StatusCode
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		resp.Status = "healthy"
	} else {
		resp.Status = "unhealthy"
	}
	return resp
}
