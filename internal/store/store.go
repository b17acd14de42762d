package store

import (
	"context"

	"github.com/testlane/testlane/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	User() User
	Credential() Credential
	Company() Company
	Membership() Membership
	Project() Project
	TestCase() TestCase
	Tenancy() Tenancy
	Statistics(ctx context.Context) (model.TenantStats, error)
	InitialMigration() error
	Close() error
}

type DataStore struct {
	db         *gorm.DB
	user       User
	credential Credential
	company    Company
	membership Membership
	project    Project
	testCase   TestCase
	tenancy    Tenancy
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:         db,
		user:       NewUserStore(db),
		credential: NewCredentialStore(db),
		company:    NewCompanyStore(db),
		membership: NewMembershipStore(db),
		project:    NewProjectStore(db),
		testCase:   NewTestCaseStore(db),
		tenancy:    NewTenancyStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) User() User {
	return s.user
}

func (s *DataStore) Credential() Credential {
	return s.credential
}

func (s *DataStore) Company() Company {
	return s.company
}

func (s *DataStore) Membership() Membership {
	return s.membership
}

func (s *DataStore) Project() Project {
	return s.project
}

func (s *DataStore) TestCase() TestCase {
	return s.testCase
}

func (s *DataStore) Tenancy() Tenancy {
	return s.tenancy
}

func (s *DataStore) Statistics(ctx context.Context) (model.TenantStats, error) {
	var stats model.TenantStats

	counts := []struct {
		model any
		dst   *int64
	}{
		{&model.Company{}, &stats.TotalCompanies},
		{&model.User{}, &stats.TotalUsers},
		{&model.Project{}, &stats.TotalProjects},
		{&model.TestCase{}, &stats.TotalTestCases},
	}

	for _, c := range counts {
		if result := s.db.WithContext(ctx).Model(c.model).Count(c.dst); result.Error != nil {
			return model.TenantStats{}, result.Error
		}
	}

	return stats, nil
}

// InitialMigration creates the schema from the gorm models. Production
// deployments run the goose migrations instead; this keeps tests and local
// sqlite setups self-contained.
func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(
		&model.User{},
		&model.Credential{},
		&model.Company{},
		&model.Membership{},
		&model.Project{},
		&model.TestCase{},
	)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
