package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const (
	PlaceholderImage = "/school-image.png"

	FallbackName    = "Unnamed School"
	FallbackAddress = "No address provided"
	FallbackCity    = "Unknown city"
)

// EnvelopeKeys are tried in order when the list response is an object
// instead of a bare array.
var EnvelopeKeys = []string{"schools", "data", "results", "items"}

// imageKeys are the record fields that may hold the image reference.
var imageKeys = []string{"imagePath", "image"}

type DisplayItem struct {
	ID       string
	Name     string
	Address  string
	City     string
	ImageURL string
}

type Status int

const (
	StatusLoaded Status = iota
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusEmpty:
		return "empty"
	default:
		return "error"
	}
}

// View is what a caller renders after Load.
type View struct {
	Status Status
	Items  []DisplayItem
	Err    error
}

func (v View) Message() string {
	switch v.Status {
	case StatusFailed:
		return "Failed to load schools."
	case StatusEmpty:
		return "No schools found, add the first one!"
	}
	return ""
}

type Lister interface {
	ListSchools(ctx context.Context) (json.RawMessage, error)
}

type Presenter struct {
	lister  Lister
	baseURL string
	log     *zap.Logger
}

// NewPresenter builds a presenter that resolves relative image references
// against baseURL.
func NewPresenter(lister Lister, baseURL string, log *zap.Logger) *Presenter {
	return &Presenter{lister: lister, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

func (p *Presenter) Load(ctx context.Context) View {
	raw, err := p.lister.ListSchools(ctx)
	if err != nil {
		p.log.Error("Failed to load schools", zap.Error(err))
		return View{Status: StatusFailed, Err: err}
	}

	items := Present(raw, p.baseURL)
	if len(items) == 0 {
		return View{Status: StatusEmpty, Items: items}
	}
	return View{Status: StatusLoaded, Items: items}
}

// Present turns a list response of any supported shape into display items.
func Present(raw json.RawMessage, baseURL string) []DisplayItem {
	records := Records(raw)
	items := make([]DisplayItem, 0, len(records))
	for _, rec := range records {
		items = append(items, displayItem(rec, baseURL))
	}
	return items
}

// Records unwraps the list response: a bare array is used as is, otherwise
// the first EnvelopeKeys entry holding an array wins. Anything else is empty.
func Records(raw json.RawMessage) []any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}

	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		for _, key := range EnvelopeKeys {
			if list, ok := t[key].([]any); ok {
				return list
			}
		}
	}
	return nil
}

func displayItem(rec any, baseURL string) DisplayItem {
	fields, _ := rec.(map[string]any)

	image := any(nil)
	for _, key := range imageKeys {
		if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
			image = s
			break
		}
	}

	return DisplayItem{
		ID:       idString(fields["id"]),
		Name:     textOr(fields["name"], FallbackName),
		Address:  textOr(fields["address"], FallbackAddress),
		City:     textOr(fields["city"], FallbackCity),
		ImageURL: ImageURL(baseURL, image),
	}
}

func textOr(v any, fallback string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return fallback
}

func idString(v any) string {
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case string:
		return t
	}
	return ""
}

// ImageURL resolves a stored image reference for display. Absolute http(s)
// URLs are kept, relative paths are joined to baseURL with a single slash and
// anything else yields PlaceholderImage.
func ImageURL(baseURL string, ref any) string {
	s, ok := ref.(string)
	if !ok {
		return PlaceholderImage
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return PlaceholderImage
	}

	u, err := url.Parse(s)
	if err != nil {
		return PlaceholderImage
	}
	if u.IsAbs() {
		if (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
			return s
		}
		return PlaceholderImage
	}
	if u.Host != "" {
		return PlaceholderImage
	}

	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(s, "/")
}
