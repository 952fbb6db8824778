package session

import (
	"context"
	"fmt"

	"lintmap/internal/diag"
	"lintmap/internal/outline"
	"lintmap/internal/source"
	"lintmap/internal/trace"
	"lintmap/internal/tree"
)

// Result summarises one RunOutline call.
type Result struct {
	File     source.FileID
	Decls    int
	Names    int
	Deferred int
	Dropped  int
}

// RunOutline drives the phases for one outlined file in compiler order:
//
//  1. parse: the file is registered, declaration names are interned and
//     the top-level declarations are announced to the lint map;
//  2. the outline's warnings are reported, most of them before their
//     declaration is attributed and so deferred;
//  3. attribute: lint spans are calculated per top-level declaration;
//  4. the deferred warnings are flushed.
//
// Diagnostics that survive lint gating go to r.
func (s *Session) RunOutline(ctx context.Context, o *outline.Outline, r diag.Reporter) (Result, error) {
	var res Result
	content, err := o.Content()
	if err != nil {
		return res, err
	}
	path := o.Source
	if path == "" {
		path = o.Path
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tracer := s.Tracer
	if ctxTracer := trace.FromContext(ctx); ctxTracer != trace.Nop {
		tracer = ctxTracer
	}

	res.File = s.Files.AddVirtual(path, content)
	nodes := o.Nodes()

	parent := trace.ParentFrom(ctx)
	parse := trace.Begin(tracer, trace.ScopePhase, "parse", parent, trace.String("path", path))
	s.Lints.StartParsingFile(res.File)
	before := s.Names.Len()
	for _, d := range o.Decls {
		tree.Walk(d, func(n tree.Node) {
			if decl, ok := n.(*tree.Decl); ok && decl.Name != "" {
				s.Names.InternString(decl.Name)
			}
		}, nil)
	}
	res.Names = s.Names.Len() - before
	if err := s.Lints.FinishParsingFile(res.File, nodes, o.Ends); err != nil {
		parse.End(trace.String("error", err.Error()))
		return res, err
	}
	parse.End(trace.Int("names", res.Names))

	gate := diag.NewLintReporter(r, s.Lints)
	for _, w := range o.Warnings {
		sev := diag.SevWarning
		if w.Mandatory {
			sev = diag.SevMandatoryWarning
		}
		gate.Report(diag.LintCode(w.Category), sev, source.Span{File: res.File, Start: w.At, End: w.At}, w.Message, nil)
	}
	res.Deferred = gate.Deferred()

	attr := trace.Begin(tracer, trace.ScopePhase, "attribute", parent, trace.Int("deferred", res.Deferred))
	for _, n := range nodes {
		if err := ctx.Err(); err != nil {
			attr.End(trace.String("error", err.Error()))
			return res, err
		}
		if !n.Kind().IsTopLevel() {
			continue
		}
		if err := s.Lints.CalculateLints(res.File, n, o.Ends); err != nil {
			attr.End(trace.String("error", err.Error()))
			return res, fmt.Errorf("%s: %w", path, err)
		}
		res.Decls++
	}
	attr.End(trace.Int("decls", res.Decls))

	gate.Flush()
	res.Dropped = gate.Dropped()
	s.Log.Debug("outline processed", "path", path, "decls", res.Decls, "deferred", res.Deferred, "dropped", res.Dropped)
	return res, nil
}
