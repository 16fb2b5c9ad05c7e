package tests

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/servizo/servizo/internal/pkg/instrument"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	pool *pgxpool.Pool
	ins  = instrument.NewNoop()
)

const schema = `
CREATE TABLE conversations (
	id              BIGINT PRIMARY KEY,
	client_id       BIGINT NOT NULL,
	admin_id        BIGINT,
	subject         TEXT NOT NULL,
	status          SMALLINT NOT NULL,
	priority        SMALLINT NOT NULL,
	last_message_at TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE messages (
	id              BIGINT PRIMARY KEY,
	conversation_id BIGINT NOT NULL REFERENCES conversations (id),
	sender_id       BIGINT NOT NULL,
	recipient_id    BIGINT NOT NULL,
	content         TEXT NOT NULL,
	message_type    SMALLINT NOT NULL,
	attachment_url  TEXT NOT NULL DEFAULT '',
	is_read         BOOLEAN NOT NULL DEFAULT FALSE,
	read_at         TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE notification_preferences (
	user_id              BIGINT PRIMARY KEY,
	new_message          BOOLEAN NOT NULL,
	priority_message     BOOLEAN NOT NULL,
	conversation_started BOOLEAN NOT NULL,
	admin_response       BOOLEAN NOT NULL,
	push                 BOOLEAN NOT NULL,
	email                BOOLEAN NOT NULL,
	sound                BOOLEAN NOT NULL,
	desktop              BOOLEAN NOT NULL,
	frequency            SMALLINT NOT NULL,
	quiet_hours_enabled  BOOLEAN NOT NULL,
	quiet_hours_start    SMALLINT NOT NULL,
	quiet_hours_end      SMALLINT NOT NULL,
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE bulk_campaigns (
	id                    BIGINT PRIMARY KEY,
	campaign_name         TEXT NOT NULL,
	channels              SMALLINT[] NOT NULL,
	subject               TEXT NOT NULL DEFAULT '',
	content               TEXT NOT NULL,
	target_filter         JSONB NOT NULL DEFAULT '{}',
	scheduled_for         TIMESTAMPTZ,
	status                SMALLINT NOT NULL,
	total_recipients      INT NOT NULL DEFAULT 0,
	successful_deliveries INT NOT NULL DEFAULT 0,
	failed_deliveries     INT NOT NULL DEFAULT 0,
	completed_at          TIMESTAMPTZ,
	created_by            BIGINT NOT NULL,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE users (
	id            BIGINT PRIMARY KEY,
	full_name     TEXT NOT NULL,
	email         TEXT NOT NULL,
	phone         TEXT,
	role          TEXT NOT NULL,
	district      TEXT,
	state         TEXT,
	is_verified   BOOLEAN NOT NULL DEFAULT FALSE,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	last_login_at TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at    TIMESTAMPTZ
);
`

func TestMain(m *testing.M) {
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:17-alpine",
		tcpostgres.WithDatabase("servizo"),
		tcpostgres.WithUsername("servizo"),
		tcpostgres.WithPassword("servizo"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "repository tests require docker. failed to start postgres: %v\n", err)
		os.Exit(1)
	}

	code := run(ctx, m, ctr)

	if err := testcontainers.TerminateContainer(ctr); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate postgres: %v\n", err)
	}

	os.Exit(code)
}

func run(ctx context.Context, m *testing.M, ctr *tcpostgres.PostgresContainer) int {
	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read connection string: %v\n", err)
		return 1
	}

	pool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create pool: %v\n", err)
		return 1
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to ping postgres: %v\n", err)
		return 1
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to apply schema: %v\n", err)
		return 1
	}

	return m.Run()
}
