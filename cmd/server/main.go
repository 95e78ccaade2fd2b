package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"ballotbox/internal/admin"
	adminadapters "ballotbox/internal/admin/adapters"
	electionhandler "ballotbox/internal/election/handler"
	electionmodels "ballotbox/internal/election/models"
	electionservice "ballotbox/internal/election/service"
	jwttoken "ballotbox/internal/jwt_token"
	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/httpserver"
	"ballotbox/internal/platform/logger"
	"ballotbox/internal/platform/metrics"
	rosterhandler "ballotbox/internal/roster/handler"
	rosterservice "ballotbox/internal/roster/service"
	votinghandler "ballotbox/internal/voting/handler"
	votingmetrics "ballotbox/internal/voting/metrics"
	votingservice "ballotbox/internal/voting/service"
	"ballotbox/internal/voting/timeout"
	id "ballotbox/pkg/domain"
	auditkafka "ballotbox/pkg/platform/audit/kafka"
	"ballotbox/pkg/platform/audit/publisher"
	"ballotbox/pkg/platform/httputil"
	adminmw "ballotbox/pkg/platform/middleware/admin"
	authmw "ballotbox/pkg/platform/middleware/auth"
	"ballotbox/pkg/platform/middleware/metadata"
	request "ballotbox/pkg/platform/middleware/request"
	"ballotbox/pkg/platform/middleware/requesttime"
	"ballotbox/pkg/platform/middleware/throttle"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	stores, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.close()

	auditOpts := []publisher.Option{
		publisher.WithLogger(log),
		publisher.WithAsyncBuffer(cfg.AuditBuffer),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := auditkafka.NewSink(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			return err
		}
		defer sink.Close()
		if err := sink.EnsureTopic(ctx, 1, 1); err != nil {
			log.WarnContext(ctx, "could not ensure audit topic", "topic", cfg.Kafka.Topic, "error", err)
		}
		auditOpts = append(auditOpts, publisher.WithSink(sink))
	}
	auditPublisher := publisher.NewPublisher(stores.audit, auditOpts...)

	election, err := loadElection(cfg.ElectionFile)
	if err != nil {
		return err
	}

	roster, err := rosterservice.New(stores.roster,
		rosterservice.WithLogger(log),
		rosterservice.WithAuditPublisher(auditPublisher),
		rosterservice.WithParticipation(stores.ledger, election.ID),
	)
	if err != nil {
		return err
	}

	electionSvc, err := electionservice.New(election, stores.tally, stores.status,
		electionservice.WithLogger(log),
		electionservice.WithAuditPublisher(auditPublisher),
		electionservice.WithEligibleVoters(roster),
	)
	if err != nil {
		return err
	}
	if err := electionSvc.Init(ctx); err != nil {
		return err
	}

	voteMetrics := votingmetrics.New()
	sessions := stores.resilientSessions(log, voteMetrics, auditPublisher.Emit)

	var voting *votingservice.Service
	registry, err := timeout.NewRegistry(
		func(sessionID id.SessionID, token timeout.Token) { voting.HandleTimeout(sessionID, token) },
		timeout.WithTimeouts(cfg.Session.Timeout, cfg.Session.WarningBefore),
		timeout.WithLogger(log),
	)
	if err != nil {
		return err
	}
	voting, err = votingservice.New(sessions, stores.ledger, stores.tally, electionSvc,
		votingservice.WithLogger(log),
		votingservice.WithAuditPublisher(auditPublisher),
		votingservice.WithMetrics(voteMetrics),
		votingservice.WithVoterDirectory(roster),
		votingservice.WithSessionTimer(registry),
		votingservice.WithTxRunner(stores.tx),
	)
	if err != nil {
		return err
	}

	jwtService, err := jwttoken.NewJWTService(cfg.SessionSigningKey, cfg.Session.CookieTTL)
	if err != nil {
		return err
	}
	limiter := throttle.NewPerMinute(cfg.AuthRatePerMinute, throttle.WithLogger(log))

	adminSvc, err := admin.NewService(
		adminadapters.NewRosterAdapter(roster),
		adminadapters.NewElectionAdapter(electionSvc),
		auditPublisher,
		log,
	)
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(request.Recovery(log))
	router.Use(request.RequestID)
	router.Use(requesttime.Middleware)
	router.Use(metadata.ClientMetadata)
	router.Use(request.AccessLog(log))
	router.Use(metrics.New().Middleware)

	router.Handle("/metrics", metrics.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := stores.ping(r.Context()); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	elections := electionhandler.New(electionSvc, log)
	elections.RegisterPublic(router)

	router.Group(func(r chi.Router) {
		r.Use(authmw.VoterSession(jwttoken.NewJWTServiceAdapter(jwtService), authmw.CookieOptions{
			Secure: cfg.SecureCookies,
		}, log))
		votinghandler.New(voting, log, limiter.Middleware).Register(r)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(adminmw.NewVerifier(cfg.AdminToken, cfg.AdminTokenHash), log))
		elections.RegisterAdmin(r)
		rosterhandler.New(roster, log).Register(r)
		admin.NewHandler(adminSvc, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoContext(gctx, "starting ballotbox", "addr", cfg.Addr, "election_id", election.ID.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return limiter.Run(gctx, sweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.InfoContext(shutdownCtx, "shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if n := registry.DisarmAll(); n > 0 {
		log.Info("stopped session countdowns", "sessions", n)
	}
	if cerr := auditPublisher.Close(); cerr != nil {
		log.Warn("failed to drain audit publisher", "error", cerr)
	}
	return err
}

func loadElection(path string) (electionmodels.Election, error) {
	if path == "" {
		return electionmodels.Default(), nil
	}
	return electionmodels.LoadFile(path)
}
