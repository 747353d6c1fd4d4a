// Package request parses chart paths of the form
//
//	{width}x{height}/[title.png/]label:value;label:value/[key=value;...]
//
// into validated piechart requests.
package request

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/piechart"
)

var (
	// ErrUnrecognizedInput is returned for a path token that matches none
	// of the chart grammars.
	ErrUnrecognizedInput = errors.New("unrecognized input")

	// ErrTooLarge is returned when the requested canvas exceeds the
	// parser's limits.
	ErrTooLarge = errors.New("chart too large")
)

// maxSignificance bounds the decimal places a request may ask for.
const maxSignificance = 15

var (
	resolutionRe = regexp.MustCompile(`^([0-9]+)x([0-9]+)$`)
	titleRe      = regexp.MustCompile(`^[^:=;]+\.png$`)
	dataRe       = regexp.MustCompile(`^([^:]*):([0-9]+(?:\.[0-9]+)?|\.[0-9]+)$`)
	settingRe    = regexp.MustCompile(`^([a-z]+)=(.*)$`)
)

// InputError describes a path token that could not be parsed.
type InputError struct {
	Token  string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v: %q (%s)", e.Err, e.Token, e.Reason)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Token)
}

func (e *InputError) Unwrap() error { return e.Err }

func unrecognized(token, reason string) error {
	return &InputError{Token: token, Reason: reason, Err: ErrUnrecognizedInput}
}

// Defaults configures a Parser.
type Defaults struct {
	Width     int // used when the path has no resolution token
	Height    int
	MaxWidth  int // 0 means unlimited
	MaxHeight int
}

// DefaultDefaults returns the 340x300 default canvas with a 4096 pixel
// limit on each side.
func DefaultDefaults() Defaults {
	return Defaults{
		Width:     piechart.DefaultWidth,
		Height:    piechart.DefaultHeight,
		MaxWidth:  4096,
		MaxHeight: 4096,
	}
}

// Parser turns chart paths into requests. A Parser is safe for concurrent use.
type Parser struct {
	defaults Defaults
}

// NewParser creates a parser with the given defaults.
func NewParser(d Defaults) *Parser {
	return &Parser{defaults: d}
}

// Parse parses path into a request with resolved settings. The returned
// request has passed piechart.Request.Validate.
func (p *Parser) Parse(path string) (piechart.Request, error) {
	req := piechart.Request{
		Width:    p.defaults.Width,
		Height:   p.defaults.Height,
		Settings: piechart.DefaultSettings(),
	}

	var haveResolution, haveTitle, haveSettings bool
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		switch {
		case resolutionRe.MatchString(seg):
			if haveResolution {
				return req, unrecognized(seg, "duplicate resolution")
			}
			w, h, err := parseResolution(seg)
			if err != nil {
				return req, err
			}
			req.Width, req.Height = w, h
			haveResolution = true

		case titleRe.MatchString(seg):
			if haveTitle {
				return req, unrecognized(seg, "duplicate title")
			}
			req.Title = seg
			haveTitle = true

		case strings.Contains(seg, ":"):
			data, err := parseData(seg)
			if err != nil {
				return req, err
			}
			req.Data = append(req.Data, data...)

		case strings.Contains(seg, "="):
			if haveSettings {
				return req, unrecognized(seg, "duplicate settings")
			}
			s, err := parseSettings(seg, req.Settings)
			if err != nil {
				return req, err
			}
			req.Settings = s
			haveSettings = true

		default:
			return req, unrecognized(seg, "")
		}
	}

	if (p.defaults.MaxWidth > 0 && req.Width > p.defaults.MaxWidth) ||
		(p.defaults.MaxHeight > 0 && req.Height > p.defaults.MaxHeight) {
		return req, fmt.Errorf("%w: %dx%d exceeds %dx%d",
			ErrTooLarge, req.Width, req.Height, p.defaults.MaxWidth, p.defaults.MaxHeight)
	}

	req.Settings = req.Settings.Resolve(req.Data)
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

func parseResolution(seg string) (int, int, error) {
	m := resolutionRe.FindStringSubmatch(seg)
	w, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, unrecognized(seg, "width out of range")
	}
	h, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, unrecognized(seg, "height out of range")
	}
	return w, h, nil
}

func parseData(seg string) ([]piechart.Entry, error) {
	var out []piechart.Entry
	for _, tok := range strings.Split(seg, ";") {
		if tok == "" {
			continue
		}
		m := dataRe.FindStringSubmatch(tok)
		if m == nil {
			return nil, unrecognized(tok, "expected label:value")
		}
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, unrecognized(tok, "invalid value")
		}
		out = append(out, piechart.Entry{Label: strings.TrimSpace(m[1]), Value: v})
	}
	return out, nil
}

func parseSettings(seg string, s piechart.Settings) (piechart.Settings, error) {
	for _, tok := range strings.Split(seg, ";") {
		if tok == "" {
			continue
		}
		m := settingRe.FindStringSubmatch(tok)
		if m == nil {
			return s, unrecognized(tok, "expected key=value")
		}
		key, val := m[1], m[2]
		switch key {
		case "legend":
			s.ShowLegend = val == "on"
		case "sort":
			s.SortDescending = val == "on"
		case "significance":
			n, err := strconv.Atoi(val)
			if err != nil {
				return s, unrecognized(tok, "significance must be an integer")
			}
			if n > maxSignificance {
				return s, unrecognized(tok, "significance out of range")
			}
			if n < 0 {
				n = piechart.AutoSignificance
			}
			s.Significance = n
		default:
			return s, unrecognized(tok, "unknown setting")
		}
	}
	return s, nil
}
