// README: OpenRouteService directions client (GeoJSON profile endpoint).
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"lastmile/internal/types"
)

// ORSProvider resolves routes through the OpenRouteService directions API.
// Safe for concurrent use.
type ORSProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

func NewORSProvider(apiKey, baseURL string, timeout time.Duration) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}
	return &ORSProvider{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving-car",
	}, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Body)
}

type orsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type orsGeoJSON struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// Route requests driving geometry for the ordered stops. ORS takes
// coordinates as [lng, lat] pairs.
func (o *ORSProvider) Route(ctx context.Context, stops []types.Point) (Path, error) {
	if len(stops) < 2 {
		return Path{}, errors.New("at least two stops required")
	}

	body := orsRequest{Coordinates: make([][2]float64, len(stops))}
	for i, s := range stops {
		body.Coordinates[i] = [2]float64{s.Lng, s.Lat}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Path{}, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", o.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return Path{}, err
	}
	defer resp.Body.Close()

	var decoded orsGeoJSON
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Path{}, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Features) == 0 {
		return Path{}, ErrNoRoute
	}

	feature := decoded.Features[0]
	path := Path{
		Geometry:    make([]types.Point, 0, len(feature.Geometry.Coordinates)),
		DistanceKm:  feature.Properties.Summary.Distance / 1000.0,
		DurationMin: feature.Properties.Summary.Duration / 60.0,
	}
	for _, c := range feature.Geometry.Coordinates {
		if len(c) < 2 {
			return Path{}, fmt.Errorf("malformed coordinate in response")
		}
		path.Geometry = append(path.Geometry, types.Point{Lat: c[1], Lng: c[0]})
	}
	if len(path.Geometry) == 0 {
		return Path{}, ErrNoRoute
	}
	return path, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx
// responses) with exponential backoff while respecting context
// cancellation.
func (o *ORSProvider) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := o.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				retry = true
			}
		}
		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return nil, lastErr
}

func (o *ORSProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := o.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp, nil
}
