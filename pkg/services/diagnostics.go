package services

import (
	"context"
	"errors"
	"time"

	"github.com/tenrai/leitor/pkg/sources"
)

// DiagStatus classifies a probe outcome. Timeouts are kept separate
// from plain failures because a table read that hangs usually means a
// row access policy silently filtering everything, not a network fault.
type DiagStatus int

const (
	DiagOK DiagStatus = iota
	DiagFailed
	DiagTimeout
)

type DiagResult struct {
	Name    string
	Status  DiagStatus
	Elapsed time.Duration
	Err     error
	Hint    string
}

// Diagnostics runs connectivity probes against the catalog and the
// backend, for the diag command.
type Diagnostics struct {
	source  sources.Source
	session func(ctx context.Context) error
	table   func(ctx context.Context, table string) error
}

func NewDiagnostics(source sources.Source, session func(ctx context.Context) error, table func(ctx context.Context, table string) error) *Diagnostics {
	return &Diagnostics{source: source, session: session, table: table}
}

const (
	sessionProbeTimeout = 5 * time.Second
	tableProbeTimeout   = 10 * time.Second
)

// Run executes every probe in order and returns all results.
func (d *Diagnostics) Run(ctx context.Context) []DiagResult {
	results := []DiagResult{
		d.probe(ctx, "catálogo", tableProbeTimeout, func(ctx context.Context) error {
			_, err := d.source.Filters(ctx)
			return err
		}, ""),
		d.probe(ctx, "sessão", sessionProbeTimeout, d.session,
			"verifique sua conexão e tente logar novamente"),
	}
	for _, table := range []string{"user_profiles", "biblioteca_usuario"} {
		results = append(results, d.probe(ctx, "tabela "+table, tableProbeTimeout,
			func(ctx context.Context) error { return d.table(ctx, table) },
			"leitura pendurada costuma indicar política de acesso bloqueando a tabela"))
	}
	return results
}

func (d *Diagnostics) probe(ctx context.Context, name string, timeout time.Duration, fn func(ctx context.Context) error, timeoutHint string) DiagResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		return DiagResult{Name: name, Status: DiagOK, Elapsed: elapsed}
	case errors.Is(err, context.DeadlineExceeded):
		return DiagResult{Name: name, Status: DiagTimeout, Elapsed: elapsed, Err: err, Hint: timeoutHint}
	default:
		return DiagResult{Name: name, Status: DiagFailed, Elapsed: elapsed, Err: err}
	}
}
