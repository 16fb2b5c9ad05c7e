package conversation

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/servizo/servizo/internal/conversation/inbound"
	"github.com/servizo/servizo/internal/conversation/outbound/db"
	"github.com/servizo/servizo/internal/conversation/usecase"
	"github.com/servizo/servizo/internal/pkg/instrument"
	"github.com/servizo/servizo/internal/pkg/messaging"
	"github.com/servizo/servizo/internal/pkg/router"
	"github.com/servizo/servizo/internal/pkg/uid"
	"github.com/servizo/servizo/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool
	Messaging  messaging.Messaging
	Instrument instrument.Instrumentation
	UID        uid.NumberID
	Validator  validator.Validator
	Router     *router.Router
}

func New(dep Dependency) error {
	dbConv := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.NewConversation(usecase.Dependency{
		RepoDB:     dbConv,
		UID:        dep.UID,
		Validator:  dep.Validator,
		Publisher:  dep.Messaging,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
