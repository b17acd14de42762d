package service_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/auth"
	"github.com/testlane/testlane/internal/authz"
	"github.com/testlane/testlane/internal/config"
	"github.com/testlane/testlane/internal/service"
	"github.com/testlane/testlane/internal/store"
	"github.com/testlane/testlane/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("test case service", Ordered, func() {
	var (
		s           store.Store
		gormdb      *gorm.DB
		testCaseSrv *service.TestCaseService

		companyID      uuid.UUID
		otherCompanyID uuid.UUID
		projectID      uuid.UUID
		memberC1       auth.Principal
		adminC2        auth.Principal
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())

		testCaseSrv = service.NewTestCaseService(s, authz.NewEngine(s))
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		companyID = uuid.New()
		otherCompanyID = uuid.New()
		projectID = uuid.New()
		memberC1 = auth.Principal{UserID: uuid.New(), CompanyID: companyID, Role: auth.RoleMember}
		adminC2 = auth.Principal{UserID: uuid.New(), CompanyID: otherCompanyID, Role: auth.RoleAdmin}

		tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertCompanyStm, otherCompanyID, "globex"))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertProjectStm, projectID, companyID, "checkout", 1))
		Expect(tx.Error).To(BeNil())
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM test_cases;")
		gormdb.Exec("DELETE FROM projects;")
		gormdb.Exec("DELETE FROM companies;")
	})

	Context("create", func() {
		It("lets a member create a test case with steps", func() {
			testCase, err := testCaseSrv.CreateTestCase(context.TODO(), memberC1, projectID, service.TestCaseForm{
				Name: "login works",
				Steps: []model.TestCaseStep{
					{Position: 1, Name: "open login page"},
					{Position: 2, Name: "submit credentials", ExpectedResult: "dashboard shown"},
				},
			})
			Expect(err).To(BeNil())
			Expect(testCase.ProjectID).To(Equal(projectID))
			Expect(testCase.Version).To(Equal(1))
			Expect(testCase.Steps.Data).To(HaveLen(2))
		})

		It("masks creating under another company's project as not found", func() {
			_, err := testCaseSrv.CreateTestCase(context.TODO(), adminC2, projectID, service.TestCaseForm{
				Name: "sneaky",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})

		It("masks creating under a missing project as not found", func() {
			_, err := testCaseSrv.CreateTestCase(context.TODO(), memberC1, uuid.New(), service.TestCaseForm{
				Name: "orphan",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("update", func() {
		It("lets a member update a test case and bumps the version", func() {
			testCase, err := testCaseSrv.CreateTestCase(context.TODO(), memberC1, projectID, service.TestCaseForm{
				Name: "login works",
			})
			Expect(err).To(BeNil())

			updated, err := testCaseSrv.UpdateTestCase(context.TODO(), memberC1, testCase.ID, service.TestCaseUpdateForm{
				Name:    "login still works",
				Version: 1,
			})
			Expect(err).To(BeNil())
			Expect(updated.Version).To(Equal(2))
		})

		It("rejects a stale version as a conflict", func() {
			testCase, err := testCaseSrv.CreateTestCase(context.TODO(), memberC1, projectID, service.TestCaseForm{
				Name: "login works",
			})
			Expect(err).To(BeNil())

			_, err = testCaseSrv.UpdateTestCase(context.TODO(), memberC1, testCase.ID, service.TestCaseUpdateForm{
				Name:    "first",
				Version: 1,
			})
			Expect(err).To(BeNil())

			_, err = testCaseSrv.UpdateTestCase(context.TODO(), memberC1, testCase.ID, service.TestCaseUpdateForm{
				Name:    "second",
				Version: 1,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrConflict{}))
		})

		It("masks a cross-tenant update as not found", func() {
			testCase, err := testCaseSrv.CreateTestCase(context.TODO(), memberC1, projectID, service.TestCaseForm{
				Name: "login works",
			})
			Expect(err).To(BeNil())

			_, err = testCaseSrv.UpdateTestCase(context.TODO(), adminC2, testCase.ID, service.TestCaseUpdateForm{
				Name:    "stolen",
				Version: 1,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("delete", func() {
		It("lets a member delete a test case", func() {
			testCase, err := testCaseSrv.CreateTestCase(context.TODO(), memberC1, projectID, service.TestCaseForm{
				Name: "login works",
			})
			Expect(err).To(BeNil())

			Expect(testCaseSrv.DeleteTestCase(context.TODO(), memberC1, testCase.ID)).To(BeNil())

			_, err = s.TestCase().Get(context.TODO(), testCase.ID)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("masks a cross-tenant delete as not found", func() {
			testCase, err := testCaseSrv.CreateTestCase(context.TODO(), memberC1, projectID, service.TestCaseForm{
				Name: "login works",
			})
			Expect(err).To(BeNil())

			err = testCaseSrv.DeleteTestCase(context.TODO(), adminC2, testCase.ID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})
})
