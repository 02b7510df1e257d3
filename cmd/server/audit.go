package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/twmb/franz-go/pkg/kgo"

	"sotcredit/internal/eligibility/ports"
	"sotcredit/internal/platform/config"
	"sotcredit/pkg/platform/audit/kafka"
	"sotcredit/pkg/platform/audit/publisher"
	"sotcredit/pkg/platform/audit/store/memory"
	"sotcredit/pkg/platform/audit/store/postgres"
	"sotcredit/pkg/platform/audit/worker"
)

const (
	auditBufferSize  = 1024
	auditTopicParts  = 3
	auditTopicRepl   = 1
	auditSetupBudget = 15 * time.Second
)

// auditWiring is the audit sink chosen by configuration. relay is nil unless
// events need relaying from the outbox to Kafka.
type auditWiring struct {
	port  ports.AuditPort
	relay func(ctx context.Context) error
	close func()
}

func buildAudit(ctx context.Context, cfg config.Audit, log *slog.Logger) (*auditWiring, error) {
	switch cfg.Sink {
	case config.AuditSinkPostgres, config.AuditSinkKafka:
	default:
		pub := publisher.NewPublisher(memory.NewInMemoryStore(),
			publisher.WithAsyncBuffer(auditBufferSize),
			publisher.WithLogger(log),
		)
		return &auditWiring{port: pub, close: pub.Close}, nil
	}

	setupCtx, cancel := context.WithTimeout(ctx, auditSetupBudget)
	defer cancel()

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	if err := db.PingContext(setupCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping audit database: %w", err)
	}
	outbox := postgres.New(db)
	if err := outbox.EnsureSchema(setupCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Writes stay synchronous so an accepted event is durable in the outbox.
	pub := publisher.NewPublisher(outbox, publisher.WithLogger(log))
	wiring := &auditWiring{
		port: pub,
		close: func() {
			pub.Close()
			_ = db.Close()
		},
	}
	if cfg.Sink == config.AuditSinkPostgres {
		return wiring, nil
	}

	client, err := kafka.NewClient(cfg.KafkaBrokers, kgo.ClientID("sotcredit-audit"))
	if err != nil {
		wiring.close()
		return nil, err
	}
	if err := kafka.EnsureTopic(setupCtx, client, cfg.Topic, auditTopicParts, auditTopicRepl); err != nil {
		client.Close()
		wiring.close()
		return nil, err
	}

	relay := worker.NewWorker(outbox, kafka.NewSink(client, cfg.Topic),
		worker.WithInterval(relayInterval(cfg.RelayInterval)),
		worker.WithLogger(log),
	)
	closeDB := wiring.close
	wiring.relay = relay.Run
	wiring.close = func() {
		client.Close()
		closeDB()
	}
	log.Info("audit relay configured", "topic", cfg.Topic, "brokers", len(cfg.KafkaBrokers))
	return wiring, nil
}

// relayInterval is never below one second.
func relayInterval(d time.Duration) time.Duration {
	if d < time.Second {
		return time.Second
	}
	return d
}
