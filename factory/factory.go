package factory

import (
	"github.com/Jidetireni/gym-manager/internal/config"
	"github.com/Jidetireni/gym-manager/internal/repository"
	"github.com/Jidetireni/gym-manager/internal/services/members"
	"github.com/Jidetireni/gym-manager/internal/services/reminders"
	"github.com/Jidetireni/gym-manager/internal/services/reports"
	"github.com/Jidetireni/gym-manager/internal/services/visits"
	"github.com/Jidetireni/gym-manager/internal/validation"

	"github.com/Jidetireni/gym-manager/pkg/database"
	emailpkg "github.com/Jidetireni/gym-manager/pkg/email"
	"github.com/Jidetireni/gym-manager/pkg/logger"
)

type Repositories struct {
	Member *repository.MemberRepository
	Visit  *repository.VisitRepository
}

type Services struct {
	Member   *members.Member
	Visit    *visits.Visit
	Report   *reports.Report
	Reminder *reminders.Reminder
}

type Factory struct {
	Config       *config.Config
	DB           *database.DB
	Email        *emailpkg.Email
	Logger       *logger.Logger
	Services     *Services
	Repositories *Repositories
}

func New(cfg *config.Config, log *logger.Logger) (*Factory, func(), error) {
	db, cleanup, err := database.New(cfg.Database.URL, cfg.Database.Type)
	if err != nil {
		return nil, nil, err
	}

	email, err := emailpkg.New(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	validator := validation.New()

	memberRepo := repository.NewMemberRepository(db.DB, db.SqlBuilder)
	visitRepo := repository.NewVisitRepository(db.DB, db.SqlBuilder)

	membersService := members.New(
		db.DB,
		validator,
		memberRepo,
		visitRepo,
		log,
	)

	visitsService := visits.New(
		validator,
		visitRepo,
		memberRepo,
		log,
	)

	reportsService := reports.New(
		cfg,
		validator,
		memberRepo,
		visitRepo,
		log,
	)

	remindersService := reminders.New(
		cfg,
		reportsService,
		email,
		log,
	)

	log.Debug().Str("db_type", db.Type).Msg("database ready")

	return &Factory{
			Config: cfg,
			DB:     db,
			Email:  email,
			Logger: log,
			Services: &Services{
				Member:   membersService,
				Visit:    visitsService,
				Report:   reportsService,
				Reminder: remindersService,
			},
			Repositories: &Repositories{
				Member: memberRepo,
				Visit:  visitRepo,
			},
		}, func() {
			cleanup()
		}, nil
}
