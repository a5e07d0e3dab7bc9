package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vyrodovalexey/avaroute/internal/util"
)

// headerFlags collects repeated -match-header flags.
type headerFlags []headerFlag

type headerFlag struct {
	name  string
	value string
}

// String implements flag.Value.
func (h *headerFlags) String() string {
	parts := make([]string, 0, len(*h))
	for _, hf := range *h {
		parts = append(parts, hf.name+"="+hf.value)
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value. The value is split at the first "=".
func (h *headerFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("header %q must have the form Name=Value", s)
	}
	name = strings.TrimSpace(name)
	if err := util.ValidateHeaderName(name); err != nil {
		return err
	}
	*h = append(*h, headerFlag{name: name, value: value})
	return nil
}

// Header returns the collected headers.
func (h headerFlags) Header() http.Header {
	header := make(http.Header, len(h))
	for _, hf := range h {
		header.Add(hf.name, hf.value)
	}
	return header
}
