package store_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/config"
	"github.com/testlane/testlane/internal/store"
	"github.com/testlane/testlane/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const (
	insertCompanyStm = "INSERT INTO companies (id, name) VALUES ('%s', '%s');"
	insertProjectStm = "INSERT INTO projects (id, company_id, name, version) VALUES ('%s', '%s', '%s', %d);"
)

var _ = Describe("project store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM test_cases;")
		gormdb.Exec("DELETE FROM projects;")
		gormdb.Exec("DELETE FROM companies;")
	})

	Context("list", func() {
		It("lists only the company's projects", func() {
			companyID := uuid.New()
			otherCompanyID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertCompanyStm, otherCompanyID, "globex"))
			Expect(tx.Error).To(BeNil())

			tx = gormdb.Exec(fmt.Sprintf(insertProjectStm, uuid.New(), companyID, "checkout", 1))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertProjectStm, uuid.New(), companyID, "billing", 1))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertProjectStm, uuid.New(), otherCompanyID, "search", 1))
			Expect(tx.Error).To(BeNil())

			projects, err := s.Project().List(context.TODO(), companyID)
			Expect(err).To(BeNil())
			Expect(projects).To(HaveLen(2))
		})

		It("lists no projects for an empty company", func() {
			companyID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
			Expect(tx.Error).To(BeNil())

			projects, err := s.Project().List(context.TODO(), companyID)
			Expect(err).To(BeNil())
			Expect(projects).To(HaveLen(0))
		})
	})

	Context("create", func() {
		It("creates a project at version 1", func() {
			companyID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
			Expect(tx.Error).To(BeNil())

			project, err := s.Project().Create(context.TODO(), model.Project{
				ID:        uuid.New(),
				CompanyID: companyID,
				Name:      "checkout",
			})
			Expect(err).To(BeNil())
			Expect(project.Version).To(Equal(1))
		})

		It("rejects a duplicate name within the same company", func() {
			companyID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertProjectStm, uuid.New(), companyID, "checkout", 1))
			Expect(tx.Error).To(BeNil())

			_, err := s.Project().Create(context.TODO(), model.Project{
				ID:        uuid.New(),
				CompanyID: companyID,
				Name:      "checkout",
			})
			Expect(err).To(MatchError(store.ErrDuplicateKey))
		})

		It("allows the same name in another company", func() {
			companyID := uuid.New()
			otherCompanyID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertCompanyStm, otherCompanyID, "globex"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertProjectStm, uuid.New(), companyID, "checkout", 1))
			Expect(tx.Error).To(BeNil())

			_, err := s.Project().Create(context.TODO(), model.Project{
				ID:        uuid.New(),
				CompanyID: otherCompanyID,
				Name:      "checkout",
			})
			Expect(err).To(BeNil())
		})
	})

	Context("update", func() {
		It("bumps the version on a matching update", func() {
			companyID := uuid.New()
			projectID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertProjectStm, projectID, companyID, "checkout", 1))
			Expect(tx.Error).To(BeNil())

			project, err := s.Project().Update(context.TODO(), model.Project{
				ID:      projectID,
				Name:    "checkout-v2",
				Version: 1,
			})
			Expect(err).To(BeNil())
			Expect(project.Name).To(Equal("checkout-v2"))
			Expect(project.Version).To(Equal(2))
		})

		It("rejects a stale version", func() {
			companyID := uuid.New()
			projectID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertProjectStm, projectID, companyID, "checkout", 3))
			Expect(tx.Error).To(BeNil())

			_, err := s.Project().Update(context.TODO(), model.Project{
				ID:      projectID,
				Name:    "stale",
				Version: 2,
			})
			Expect(err).To(MatchError(store.ErrVersionMismatch))
		})

		It("lets exactly one of two competing updates win", func() {
			companyID := uuid.New()
			projectID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertProjectStm, projectID, companyID, "checkout", 1))
			Expect(tx.Error).To(BeNil())

			first, err := s.Project().Update(context.TODO(), model.Project{
				ID:      projectID,
				Name:    "first",
				Version: 1,
			})
			Expect(err).To(BeNil())
			Expect(first.Version).To(Equal(2))

			_, err = s.Project().Update(context.TODO(), model.Project{
				ID:      projectID,
				Name:    "second",
				Version: 1,
			})
			Expect(err).To(MatchError(store.ErrVersionMismatch))

			project, err := s.Project().Get(context.TODO(), projectID)
			Expect(err).To(BeNil())
			Expect(project.Name).To(Equal("first"))
		})

		It("reports a missing project as not found", func() {
			_, err := s.Project().Update(context.TODO(), model.Project{
				ID:      uuid.New(),
				Name:    "ghost",
				Version: 1,
			})
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("get", func() {
		It("reports a missing project as not found", func() {
			_, err := s.Project().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("count", func() {
		It("counts the company's projects", func() {
			companyID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertProjectStm, uuid.New(), companyID, "checkout", 1))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertProjectStm, uuid.New(), companyID, "billing", 1))
			Expect(tx.Error).To(BeNil())

			count, err := s.Project().CountByCompany(context.TODO(), companyID)
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(2)))
		})
	})
})
