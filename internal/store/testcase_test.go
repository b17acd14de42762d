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

var _ = Describe("test case store", Ordered, func() {
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

	seedProject := func() uuid.UUID {
		companyID := uuid.New()
		projectID := uuid.New()
		tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertProjectStm, projectID, companyID, "checkout", 1))
		Expect(tx.Error).To(BeNil())
		return projectID
	}

	Context("create", func() {
		It("stores the steps and reads them back", func() {
			projectID := seedProject()

			created, err := s.TestCase().Create(context.TODO(), model.TestCase{
				ID:        uuid.New(),
				ProjectID: projectID,
				Name:      "login works",
				Steps: model.MakeJSONField([]model.TestCaseStep{
					{Position: 1, Name: "open login page", Action: "navigate to /login"},
					{Position: 2, Name: "submit credentials", ExpectedResult: "dashboard shown"},
				}),
			})
			Expect(err).To(BeNil())
			Expect(created.Version).To(Equal(1))

			testCase, err := s.TestCase().Get(context.TODO(), created.ID)
			Expect(err).To(BeNil())
			Expect(testCase.Steps).ToNot(BeNil())
			Expect(testCase.Steps.Data).To(HaveLen(2))
			Expect(testCase.Steps.Data[0].Name).To(Equal("open login page"))
			Expect(testCase.Steps.Data[1].ExpectedResult).To(Equal("dashboard shown"))
		})
	})

	Context("update", func() {
		It("rejects a stale version", func() {
			projectID := seedProject()
			testCaseID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertTestCaseStm, testCaseID, projectID, "login works", 2))
			Expect(tx.Error).To(BeNil())

			_, err := s.TestCase().Update(context.TODO(), model.TestCase{
				ID:      testCaseID,
				Name:    "stale",
				Version: 1,
			})
			Expect(err).To(MatchError(store.ErrVersionMismatch))
		})

		It("bumps the version on a matching update", func() {
			projectID := seedProject()
			testCaseID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertTestCaseStm, testCaseID, projectID, "login works", 1))
			Expect(tx.Error).To(BeNil())

			testCase, err := s.TestCase().Update(context.TODO(), model.TestCase{
				ID:      testCaseID,
				Name:    "login still works",
				Version: 1,
			})
			Expect(err).To(BeNil())
			Expect(testCase.Name).To(Equal("login still works"))
			Expect(testCase.Version).To(Equal(2))
		})
	})

	Context("delete by project", func() {
		It("removes every test case under the project", func() {
			projectID := seedProject()
			for i := 0; i < 3; i++ {
				tx := gormdb.Exec(fmt.Sprintf(insertTestCaseStm, uuid.New(), projectID, fmt.Sprintf("case-%d", i), 1))
				Expect(tx.Error).To(BeNil())
			}

			Expect(s.TestCase().DeleteByProject(context.TODO(), projectID)).To(BeNil())

			testCases, err := s.TestCase().List(context.TODO(), projectID)
			Expect(err).To(BeNil())
			Expect(testCases).To(HaveLen(0))
		})
	})
})
