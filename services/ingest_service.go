package services

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"
	"time"

	apperrors "github.com/AquaBuilt/aqua-built-backend/errors"
	"github.com/AquaBuilt/aqua-built-backend/extractor"
	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/AquaBuilt/aqua-built-backend/pkg/prodbx"
	"github.com/AquaBuilt/aqua-built-backend/types"
	"github.com/prometheus/client_golang/prometheus"
)

// EmailParser turns a raw email body into its text and HTML renderings.
// MIME decoding lives behind this boundary so the pipeline never sees
// multipart structure.
type EmailParser interface {
	Parse(raw []byte) (types.ParsedEmail, error)
}

// PlainEmailParser is the default parser: it treats the payload as a single
// already-decoded body, classifying it as HTML when it leads with markup.
type PlainEmailParser struct{}

func (PlainEmailParser) Parse(raw []byte) (types.ParsedEmail, error) {
	body := string(raw)
	if strings.HasPrefix(strings.TrimSpace(body), "<") {
		return types.ParsedEmail{HTML: body}, nil
	}
	return types.ParsedEmail{Text: body}, nil
}

// DigestSender is the slice of EmailService the ingest pipeline needs.
type DigestSender interface {
	SendExtractionDigest(ctx context.Context, extraction *types.ContractExtraction) error
}

type ingestMetrics struct {
	contractParses   prometheus.Counter
	parseFailures    prometheus.Counter
	addendumFailures prometheus.Counter
	fetchLatency     prometheus.Histogram
}

// IngestService orchestrates the full contract pipeline: decode the email,
// extract location, items and links, then fan each addendum URL out through
// the worker pool for validate/fetch/detect/extract.
type IngestService struct {
	parser      EmailParser
	client      prodbx.ClientInterface
	pool        *WorkerPool
	digest      DigestSender
	maxParallel int
	metrics     *ingestMetrics
}

// NewIngestService builds the pipeline. maxParallel caps concurrent addendum
// page fetches per email; zero or negative means no extra cap beyond the
// worker pool size.
func NewIngestService(parser EmailParser, client prodbx.ClientInterface, pool *WorkerPool, digest DigestSender, maxParallel int) *IngestService {
	return NewIngestServiceWithRegistry(parser, client, pool, digest, maxParallel, prometheus.DefaultRegisterer)
}

func NewIngestServiceWithRegistry(parser EmailParser, client prodbx.ClientInterface, pool *WorkerPool, digest DigestSender, maxParallel int, reg prometheus.Registerer) *IngestService {
	if parser == nil {
		parser = PlainEmailParser{}
	}
	metrics := &ingestMetrics{
		contractParses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aquabuilt_contract_parses_total",
			Help: "Total number of contract emails parsed",
		}),
		parseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aquabuilt_contract_parse_failures_total",
			Help: "Total number of contract emails that failed to parse",
		}),
		addendumFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aquabuilt_addendum_failures_total",
			Help: "Total number of addendum URLs that failed validation or fetch",
		}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aquabuilt_addendum_fetch_duration_seconds",
			Help:    "Time taken to fetch and extract one addendum page",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		}),
	}
	reg.MustRegister(metrics.contractParses)
	reg.MustRegister(metrics.parseFailures)
	reg.MustRegister(metrics.addendumFailures)
	reg.MustRegister(metrics.fetchLatency)

	return &IngestService{
		parser:      parser,
		client:      client,
		pool:        pool,
		digest:      digest,
		maxParallel: maxParallel,
		metrics:     metrics,
	}
}

// IngestContract runs the pipeline over a base64-encoded raw email and
// returns the merged extraction. Addendum failures surface inside the
// per-URL results; only a malformed envelope or a contract with no
// extractable signal produces an error.
func (s *IngestService) IngestContract(ctx context.Context, rawEmail string) (*types.ContractExtraction, error) {
	log := logger.GetLogger()

	raw, err := base64.StdEncoding.DecodeString(rawEmail)
	if err != nil {
		s.metrics.parseFailures.Inc()
		return nil, apperrors.MalformedInput("Invalid email encoding", err.Error())
	}

	parsed, err := s.parser.Parse(raw)
	if err != nil {
		s.metrics.parseFailures.Inc()
		return nil, apperrors.Wrap(err, apperrors.MalformedInputError, "Failed to decode email body")
	}

	text := parsed.Text
	if text == "" {
		// HTML-only emails still feed the text extractors.
		if visible, verr := prodbx.VisibleText(parsed.HTML); verr == nil {
			text = visible
		}
	}

	location, err := extractor.ExtractLocation(text)
	if err != nil {
		s.metrics.parseFailures.Inc()
		return nil, err
	}

	items, err := extractor.ExtractOrderItems(text)
	if err != nil {
		s.metrics.parseFailures.Inc()
		return nil, err
	}

	links := extractor.ExtractContractLinks(parsed, s.client.Host())

	extraction := &types.ContractExtraction{
		Location: location,
		Items:    items,
		Links:    links,
		Addenda:  s.ProcessAddenda(ctx, links.AddendumURLs),
	}

	s.metrics.contractParses.Inc()
	log.Infow("Contract ingested",
		"clientName", location.ClientName,
		"items", len(items),
		"addenda", len(extraction.Addenda))

	if s.digest != nil {
		if derr := s.digest.SendExtractionDigest(ctx, extraction); derr != nil {
			log.Warnw("Extraction digest failed", "error", derr)
		}
	}

	return extraction, nil
}

// ProcessAddenda validates, fetches and extracts every addendum URL in
// parallel through the worker pool, never exceeding maxParallel concurrent
// fetches per email. The result slice preserves the input order; each
// addendum's items keep their own internal order.
func (s *IngestService) ProcessAddenda(ctx context.Context, urls []string) []types.AddendumResult {
	if len(urls) == 0 {
		return nil
	}

	limit := s.maxParallel
	if limit <= 0 {
		limit = len(urls)
	}
	sem := make(chan struct{}, limit)

	results := make([]types.AddendumResult, len(urls))
	var wg sync.WaitGroup

	for i, url := range urls {
		i, url := i, url
		wg.Add(1)
		// Pooled jobs run under the pool-supplied context so shutdown
		// and the per-job timeout cancel in-flight fetches.
		run := func(jobCtx context.Context) error {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = s.ProcessAddendum(jobCtx, url)
			return nil
		}
		if s.pool == nil || !s.pool.Submit(Job{Name: "addendum-fetch", Execute: run}) {
			// Queue full or no pool configured: run inline so the
			// result slot is never lost.
			_ = run(ctx)
		}
	}
	wg.Wait()

	return results
}

// ProcessAddendum handles one URL end to end. Validation and transport
// failures come back as Valid=false results carrying the reason.
func (s *IngestService) ProcessAddendum(ctx context.Context, url string) types.AddendumResult {
	result := types.AddendumResult{URL: url}

	if !s.client.ValidateURL(url) {
		s.metrics.addendumFailures.Inc()
		result.Error = "url is not a valid contract page link"
		return result
	}

	start := time.Now()
	markup, err := s.client.FetchHTML(ctx, url)
	s.metrics.fetchLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.addendumFailures.Inc()
		result.Error = err.Error()
		// Both number strategies still run; with no page text the
		// URL-embedded number is all that can answer.
		result.AddendumNumber = prodbx.ExtractNumber("", url)
		return result
	}

	result.Valid = true
	result.Sections = prodbx.DetectSections(markup)

	pageText, terr := prodbx.VisibleText(markup)
	if terr != nil {
		pageText = ""
	}
	result.AddendumNumber = prodbx.ExtractNumber(pageText, url)

	items, ierr := prodbx.ExtractItems(markup)
	if ierr != nil {
		// A reachable page with no item table is still a valid
		// addendum; record why the table is empty.
		result.Error = ierr.Error()
		return result
	}
	result.Items = items

	return result
}

// ValidateAddendumURL answers the validation question without touching the
// network.
func (s *IngestService) ValidateAddendumURL(url string) types.AddendumResult {
	result := types.AddendumResult{URL: url, Valid: s.client.ValidateURL(url)}
	if !result.Valid {
		result.Error = "url is not a valid contract page link"
	}
	return result
}
