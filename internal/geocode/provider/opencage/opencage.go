// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package opencage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/bestbikeday/internal/geo"
	"github.com/wneessen/bestbikeday/internal/geocode"
	"github.com/wneessen/bestbikeday/internal/http"
)

const (
	APIEndpoint = "https://api.opencagedata.com/geocode/v1/json"
	APITimeout  = time.Second * 10
	name        = "opencage"
)

type OpenCage struct {
	apikey string
	http   *http.Client
	lang   language.Tag
}

type Response struct {
	Results      []Result `json:"results"`
	TotalResults int      `json:"total_results"`
	Status       struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
}

type Result struct {
	Components  Components `json:"components"`
	DisplayName string     `json:"formatted"`
	Geometry    Geometry   `json:"geometry"`
}

type Components struct {
	NormalizedCity string `json:"_normalized_city"`
	City           string `json:"city"`
	Town           string `json:"town"`
	Village        string `json:"village"`
	State          string `json:"state"`
	Country        string `json:"country"`
}

type Geometry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

func New(client *http.Client, lang language.Tag, apikey string) *OpenCage {
	return &OpenCage{
		apikey: apikey,
		lang:   lang,
		http:   client,
	}
}

func (o *OpenCage) Name() string {
	return name
}

func (o *OpenCage) Search(ctx context.Context, address string) (geo.Coordinate, error) {
	response, err := o.query(ctx, address)
	if err != nil {
		return geo.Coordinate{}, err
	}
	if len(response.Results) < 1 {
		return geo.Coordinate{}, nil
	}

	return geo.Coordinate{
		Lat:   response.Results[0].Geometry.Lat,
		Lon:   response.Results[0].Geometry.Lon,
		Found: true,
	}, nil
}

func (o *OpenCage) Reverse(ctx context.Context, coords geo.Coordinate) (geocode.Address, error) {
	response, err := o.query(ctx, fmt.Sprintf("%f,%f", coords.Lat, coords.Lon))
	if err != nil {
		return geocode.Address{}, err
	}
	if len(response.Results) < 1 {
		return geocode.Address{Latitude: coords.Lat, Longitude: coords.Lon}, nil
	}

	result := response.Results[0]
	address := geocode.Address{
		AddressFound: true,
		Latitude:     result.Geometry.Lat,
		Longitude:    result.Geometry.Lon,
		DisplayName:  result.DisplayName,
		City:         result.Components.NormalizedCity,
		State:        result.Components.State,
		Country:      result.Components.Country,
	}
	for _, name := range []string{result.Components.City, result.Components.Town, result.Components.Village} {
		if address.City != "" {
			break
		}
		address.City = name
	}

	return address, nil
}

func (o *OpenCage) query(ctx context.Context, q string) (Response, error) {
	var response Response

	query := url.Values{}
	query.Set("key", o.apikey)
	query.Set("q", q)
	query.Set("limit", "1")
	query.Set("no_annotations", "1")
	query.Set("no_record", "1")
	query.Set("language", o.lang.String())

	code, err := o.http.GetWithTimeout(ctx, APIEndpoint, &response, query, nil, APITimeout)
	if err != nil {
		return response, fmt.Errorf("failed to retrieve address details from OpenCage API: %w", err)
	}
	if code != 200 {
		return response, fmt.Errorf("OpenCage API returned non-positive response code: %d (%s)", code,
			response.Status.Message)
	}
	return response, nil
}
