package issuance

import (
	"context"
	"log/slog"
	"time"

	"govos/internal/document"
	"govos/internal/issuance/metrics"
	"govos/internal/platform/privacy"
	"govos/internal/platform/tracer"
)

// Service issues documents from the portal form and reviews them against
// the active request.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithMetrics sets the metrics collector for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer sets the span tracer for the service.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(opts ...Option) *Service {
	s := &Service{
		logger: slog.New(slog.DiscardHandler),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue prints the form. profile may be nil when no request is active
// (self-issuance). Selected record indexes outside the profile are ignored.
func (s *Service) Issue(form Form, profile *document.CitizenProfile, now time.Time) document.PrintedDoc {
	doc := document.PrintedDoc{
		DocType:       form.DocType,
		Label:         document.LabelOf(form.DocType),
		Name:          form.Name,
		RRNFront:      form.RRNFront,
		RRNBack:       form.RRNBack,
		Address:       form.Address,
		AddressDetail: form.AddressDetail,
		PhoneNumber:   form.PhoneNumber,
		Purpose:       form.Purpose,
		PurposeDetail: form.PurposeDetail,
		TargetName:    form.TargetName,
		Relationship:  form.Relationship,
		Copies:        form.Copies,
		BaseAddress:   form.BaseAddress,
		PeriodStart:   form.PeriodStart,
		PeriodEnd:     form.PeriodEnd,
		Options:       form.Options,
		Variant:       form.Variant,
		Disclosure:    form.Disclosure,
		Delivery:      form.Delivery,
		IssuedAt:      now,
	}

	requested := ""
	if profile != nil {
		requested = profile.DetailOption
		for _, i := range form.SelectedRecords {
			if i >= 0 && i < len(profile.HistoryRecords) {
				doc.SelectedRecords = append(doc.SelectedRecords, profile.HistoryRecords[i])
			}
		}
	}

	if form.IsSelfIssue() {
		doc.DetailOption = document.DetailSelfIssued
	} else {
		doc.DetailOption = document.DeriveDetailOption(form.Options.IncludePastAddress, requested)
	}

	if s.metrics != nil {
		s.metrics.IncrementIssued(string(doc.DocType))
	}
	return doc
}

// Review validates doc against profile, recording the outcome.
func (s *Service) Review(ctx context.Context, doc document.PrintedDoc, profile document.CitizenProfile) Verdict {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanIssuanceReview,
		tracer.String(tracer.AttrDocType, string(doc.DocType)),
		tracer.String(tracer.AttrNationalIDHash, privacy.HashNationalID(doc.RRNFront, doc.RRNBack)),
	)
	defer span.End(nil)

	verdict := Validate(doc, profile)

	span.SetAttributes(
		tracer.String(tracer.AttrVerdict, verdict.MetricLabel()),
		tracer.Bool(tracer.AttrSelfIssued, verdict.SelfIssued),
	)
	if s.metrics != nil {
		s.metrics.IncrementVerdict(string(doc.DocType), verdict.MetricLabel())
		s.metrics.ObserveReviewLatency(time.Since(start))
	}

	attrs := []any{
		"doc_type", doc.DocType,
		"requested_type", profile.RequestType,
		"national_id_hash", privacy.HashNationalID(doc.RRNFront, doc.RRNBack),
		"verdict", verdict.MetricLabel(),
	}
	if verdict.Accepted {
		s.logger.InfoContext(ctx, "document accepted", attrs...)
	} else {
		attrs = append(attrs, "reason", verdict.Reason)
		s.logger.InfoContext(ctx, "document rejected", attrs...)
	}
	return verdict
}
