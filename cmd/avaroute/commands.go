package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/vyrodovalexey/avaroute/internal/config"
	"github.com/vyrodovalexey/avaroute/internal/observability"
	"github.com/vyrodovalexey/avaroute/internal/routing"
	"github.com/vyrodovalexey/avaroute/internal/util"
)

// loadTable reads, lints and validates the routing document.
func loadTable(flags cliFlags, logger observability.Logger, metrics *observability.Metrics) (*routing.Table, error) {
	opts, err := loaderOptions(flags)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	table, warnings, err := buildTable(flags.configPath, opts...)
	metrics.RecordLoad(err == nil, time.Since(start))
	if err != nil {
		return nil, util.WrapError(err, "loading "+flags.configPath)
	}

	for _, warning := range warnings {
		logger.Warn("routing configuration warning",
			observability.String("path", warning.Path),
			observability.String("message", warning.Message),
		)
	}

	metrics.RecordSwap(table.Len())
	logger.Info("routing configuration loaded",
		observability.Int("rules", table.Len()),
		observability.String("authorization_api_url", table.AuthorizationAPIURL()),
	)

	return table, nil
}

// loaderOptions translates -format into loader options.
func loaderOptions(flags cliFlags) ([]config.LoaderOption, error) {
	if flags.format == "" {
		return nil, nil
	}
	format, err := config.ParseFormat(flags.format)
	if err != nil {
		return nil, err
	}
	return []config.LoaderOption{config.WithFormat(format)}, nil
}

func buildTable(path string, opts ...config.LoaderOption) (*routing.Table, config.ValidationWarnings, error) {
	cfg, err := config.NewLoader(opts...).Load(path)
	if err != nil {
		return nil, nil, err
	}

	table, err := routing.NewTable(cfg)
	if err != nil {
		return nil, nil, err
	}

	return table, config.Lint(cfg), nil
}

// checkTable prints a one-line summary of a valid table.
func checkTable(w io.Writer, table *routing.Table) error {
	_, err := fmt.Fprintf(w, "ok: %d rules, authorization_api_url %s\n",
		table.Len(), table.AuthorizationAPIURL())
	return err
}

// dumpTable writes the table's persisted form in the named format.
func dumpTable(w io.Writer, table *routing.Table, formatName string) error {
	format, err := config.ParseFormat(formatName)
	if err != nil {
		return err
	}

	data, err := config.Marshal(table.Config(), format)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// matchRequest looks up the request described by the -match flags and
// prints the selected rule.
func matchRequest(w io.Writer, table *routing.Table, flags cliFlags) error {
	req := routing.Request{
		Host:    flags.matchHost,
		Path:    flags.matchPath,
		Headers: flags.matchHeaders.Header(),
	}

	rule, err := table.FirstMatch(req)
	if err != nil {
		return err
	}

	auth := "default"
	if flag := rule.AuthenticationRequired(); flag != nil {
		auth = strconv.FormatBool(*flag)
	}

	_, err = fmt.Fprintf(w, "rules[%d]: target_service=%s target_port=%s authentication_required=%s\n",
		rule.Index(), rule.TargetService(), rule.TargetPort(), auth)
	return err
}
