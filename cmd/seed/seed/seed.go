package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Jidetireni/gym-manager/factory"
	"github.com/Jidetireni/gym-manager/internal/config"
	"github.com/Jidetireni/gym-manager/internal/dto"
	"github.com/Jidetireni/gym-manager/internal/helpers"
	"github.com/Jidetireni/gym-manager/internal/membership"
	"github.com/Jidetireni/gym-manager/internal/services/members"
	"github.com/Jidetireni/gym-manager/internal/services/visits"
	"github.com/Jidetireni/gym-manager/pkg/database"
	"github.com/Jidetireni/gym-manager/pkg/logger"
)

type Seed struct {
	Config  *config.Config
	DB      *database.DB
	Members *members.Member
	Visits  *visits.Visit
	Now     func() time.Time
}

func NewSeeder(cfg *config.Config, log *logger.Logger) (*Seed, func(), error) {

	if !cfg.IsDev {
		return nil, nil, fmt.Errorf("seeding is only allowed in development environment")
	}

	factory, cleanup, err := factory.New(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize factory: %w", err)
	}

	return &Seed{
		Config:  cfg,
		DB:      factory.DB,
		Members: factory.Services.Member,
		Visits:  factory.Services.Visit,
		Now:     time.Now,
	}, cleanup, nil
}

func (s *Seed) ResetDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Println("Resetting database...")

	statements := []string{"DELETE FROM visits", "DELETE FROM members", "DELETE FROM sqlite_sequence WHERE name IN ('visits', 'members')"}
	if s.DB.Type == database.TypePostgres {
		statements = []string{"TRUNCATE TABLE visits, members RESTART IDENTITY CASCADE"}
	}

	for _, stmt := range statements {
		if _, err := s.DB.DB.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("Failed to reset database: %v", err)
		}
	}

	fmt.Println("Database reset completed.")
}

// at returns the seeding day shifted by offset days, at the given hour.
func (s *Seed) at(offset, hour int) func() time.Time {
	y, m, d := s.Now().Date()
	t := time.Date(y, m, d+offset, hour, 0, 0, 0, time.Local)
	return func() time.Time { return t }
}

// CreateMembers registers the demo members and their visits through the
// services, backdating each write with the service clock.
func (s *Seed) CreateMembers() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("Creating members...")
	for _, seedMember := range Members {
		if err := s.createMember(ctx, seedMember); err != nil {
			log.Fatalf("Failed to create member %s: %v", seedMember.Name, err)
		}
	}

	s.Members.Now = time.Now
	s.Visits.Now = time.Now
	fmt.Printf("%d members created successfully.\n", len(Members))
}

func (s *Seed) createMember(ctx context.Context, seedMember SeedMember) error {
	registered := s.at(seedMember.StartOffset, 8)
	s.Members.Now = registered

	member, err := s.Members.Create(ctx, dto.MemberInput{
		Name:           seedMember.Name,
		Phone:          seedMember.Phone,
		Email:          seedMember.Email,
		Address:        seedMember.Address,
		MembershipType: seedMember.MembershipType,
		StartDate:      helpers.FormatDate(membership.DateOnly(registered())),
		AmountPaid:     seedMember.AmountPaid,
		PaymentMethod:  seedMember.PaymentMethod,
		Status:         seedMember.Status,
	})
	if err != nil {
		return err
	}

	for _, seedVisit := range seedMember.Visits {
		s.Visits.Now = s.at(seedVisit.DayOffset, seedVisit.Hour)
		if _, err := s.Visits.RecordVisit(ctx, dto.RecordVisitInput{
			MemberID:      member.ID,
			PaymentAmount: seedVisit.PaymentAmount,
			PaymentMethod: seedVisit.PaymentMethod,
			Notes:         seedVisit.Notes,
		}); err != nil {
			return fmt.Errorf("record visit: %w", err)
		}
	}

	fmt.Printf("Member %s created with %d visits.\n", member.Name, len(seedMember.Visits))
	return nil
}
