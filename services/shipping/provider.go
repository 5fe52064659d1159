package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"nekokin/models"
	"nekokin/services/booking"
)

// Provider resolves a road distance between two free-text addresses.
type Provider interface {
	Name() string
	Distance(ctx context.Context, origin, destination string) (*models.DistanceEstimate, error)
}

const (
	goongGeocodeURL  = "https://rsapi.goong.io/geocode"
	goongMatrixURL   = "https://rsapi.goong.io/DistanceMatrix"
	googleMatrixURL  = "https://maps.googleapis.com/maps/api/distancematrix/json"
	providerTimeout  = 10 * time.Second
	goongVehicleType = "car"
)

// GoongProvider resolves distances through Goong's geocode and distance
// matrix APIs. Goong's matrix endpoint wants coordinates, so each address is
// geocoded first.
type GoongProvider struct {
	APIKey string
	client *http.Client
}

func NewGoongProvider(apiKey string) *GoongProvider {
	return &GoongProvider{APIKey: apiKey, client: &http.Client{Timeout: providerTimeout}}
}

func (p *GoongProvider) Name() string { return "goong" }

func (p *GoongProvider) Distance(ctx context.Context, origin, destination string) (*models.DistanceEstimate, error) {
	from, err := p.geocode(ctx, origin)
	if err != nil {
		return nil, err
	}
	to, err := p.geocode(ctx, destination)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("origins", from)
	q.Set("destinations", to)
	q.Set("vehicle", goongVehicleType)
	q.Set("api_key", p.APIKey)

	var out struct {
		Rows []struct {
			Elements []struct {
				Status   string `json:"status"`
				Distance struct {
					Text  string `json:"text"`
					Value int64  `json:"value"`
				} `json:"distance"`
				Duration struct {
					Text  string `json:"text"`
					Value int64  `json:"value"`
				} `json:"duration"`
			} `json:"elements"`
		} `json:"rows"`
	}
	if err := p.getJSON(ctx, goongMatrixURL+"?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	if len(out.Rows) == 0 || len(out.Rows[0].Elements) == 0 {
		return nil, booking.NewExternalError("goong returned no route")
	}
	el := out.Rows[0].Elements[0]
	if el.Status != "" && el.Status != "OK" {
		return nil, booking.NewExternalError("goong could not route: %s", el.Status)
	}
	return &models.DistanceEstimate{
		DistanceText:  el.Distance.Text,
		DistanceValue: el.Distance.Value,
		DurationText:  el.Duration.Text,
		DurationValue: el.Duration.Value,
	}, nil
}

// geocode turns an address into a "lat,lng" pair.
func (p *GoongProvider) geocode(ctx context.Context, address string) (string, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("api_key", p.APIKey)

	var out struct {
		Results []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := p.getJSON(ctx, goongGeocodeURL+"?"+q.Encode(), &out); err != nil {
		return "", err
	}
	if len(out.Results) == 0 {
		return "", booking.NewValidationError("address %q could not be located", address)
	}
	loc := out.Results[0].Geometry.Location
	return fmt.Sprintf("%f,%f", loc.Lat, loc.Lng), nil
}

func (p *GoongProvider) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return booking.NewExternalError("goong request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return booking.NewExternalError("goong returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GoogleProvider resolves distances through the Google Maps Distance Matrix
// API, which geocodes the addresses itself.
type GoogleProvider struct {
	APIKey string
	client *http.Client
}

func NewGoogleProvider(apiKey string) *GoogleProvider {
	return &GoogleProvider{APIKey: apiKey, client: &http.Client{Timeout: providerTimeout}}
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) Distance(ctx context.Context, origin, destination string) (*models.DistanceEstimate, error) {
	q := url.Values{}
	q.Set("origins", origin)
	q.Set("destinations", destination)
	q.Set("key", p.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleMatrixURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, booking.NewExternalError("google maps request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, booking.NewExternalError("google maps returned %d", resp.StatusCode)
	}

	var out struct {
		Status string `json:"status"`
		Rows   []struct {
			Elements []struct {
				Status   string `json:"status"`
				Distance struct {
					Text  string `json:"text"`
					Value int64  `json:"value"`
				} `json:"distance"`
				Duration struct {
					Text  string `json:"text"`
					Value int64  `json:"value"`
				} `json:"duration"`
			} `json:"elements"`
		} `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, booking.NewExternalError("google maps response unreadable: %v", err)
	}
	if out.Status != "OK" || len(out.Rows) == 0 || len(out.Rows[0].Elements) == 0 {
		return nil, booking.NewExternalError("google maps could not route: %s", out.Status)
	}
	el := out.Rows[0].Elements[0]
	if el.Status != "OK" {
		return nil, booking.NewExternalError("google maps could not route: %s", el.Status)
	}
	return &models.DistanceEstimate{
		DistanceText:  el.Distance.Text,
		DistanceValue: el.Distance.Value,
		DurationText:  el.Duration.Text,
		DurationValue: el.Duration.Value,
	}, nil
}
