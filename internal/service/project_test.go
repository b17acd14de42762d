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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const (
	insertCompanyStm  = "INSERT INTO companies (id, name) VALUES ('%s', '%s');"
	insertProjectStm  = "INSERT INTO projects (id, company_id, name, version) VALUES ('%s', '%s', '%s', %d);"
	insertTestCaseStm = "INSERT INTO test_cases (id, project_id, name, version) VALUES ('%s', '%s', '%s', %d);"
)

var _ = Describe("project service", Ordered, func() {
	var (
		s          store.Store
		gormdb     *gorm.DB
		projectSrv *service.ProjectService

		companyID      uuid.UUID
		otherCompanyID uuid.UUID
		adminC1        auth.Principal
		memberC1       auth.Principal
		adminC2        auth.Principal
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())

		projectSrv = service.NewProjectService(s, authz.NewEngine(s))
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		companyID = uuid.New()
		otherCompanyID = uuid.New()
		adminC1 = auth.Principal{UserID: uuid.New(), CompanyID: companyID, Role: auth.RoleAdmin}
		memberC1 = auth.Principal{UserID: uuid.New(), CompanyID: companyID, Role: auth.RoleMember}
		adminC2 = auth.Principal{UserID: uuid.New(), CompanyID: otherCompanyID, Role: auth.RoleAdmin}

		tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertCompanyStm, otherCompanyID, "globex"))
		Expect(tx.Error).To(BeNil())
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM test_cases;")
		gormdb.Exec("DELETE FROM projects;")
		gormdb.Exec("DELETE FROM companies;")
	})

	Context("create", func() {
		It("lets an admin create a project", func() {
			project, err := projectSrv.CreateProject(context.TODO(), adminC1, service.ProjectForm{Name: "checkout"})
			Expect(err).To(BeNil())
			Expect(project.CompanyID).To(Equal(companyID))
			Expect(project.Version).To(Equal(1))
		})

		It("forbids a member creating a project", func() {
			_, err := projectSrv.CreateProject(context.TODO(), memberC1, service.ProjectForm{Name: "checkout"})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrForbidden{}))
		})

		It("rejects a duplicate name inside the company", func() {
			_, err := projectSrv.CreateProject(context.TODO(), adminC1, service.ProjectForm{Name: "checkout"})
			Expect(err).To(BeNil())

			_, err = projectSrv.CreateProject(context.TODO(), adminC1, service.ProjectForm{Name: "checkout"})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrConflict{}))
		})
	})

	Context("read", func() {
		It("masks another company's project as not found", func() {
			project, err := projectSrv.CreateProject(context.TODO(), adminC1, service.ProjectForm{Name: "checkout"})
			Expect(err).To(BeNil())

			_, err = projectSrv.GetProject(context.TODO(), adminC2, project.ID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})

		It("lists only the caller's projects", func() {
			_, err := projectSrv.CreateProject(context.TODO(), adminC1, service.ProjectForm{Name: "checkout"})
			Expect(err).To(BeNil())
			_, err = projectSrv.CreateProject(context.TODO(), adminC2, service.ProjectForm{Name: "search"})
			Expect(err).To(BeNil())

			projects, err := projectSrv.ListProjects(context.TODO(), memberC1)
			Expect(err).To(BeNil())
			Expect(projects).To(HaveLen(1))
			Expect(projects[0].Name).To(Equal("checkout"))
		})
	})

	Context("update", func() {
		It("lets exactly one of two same-version updates win", func() {
			project, err := projectSrv.CreateProject(context.TODO(), adminC1, service.ProjectForm{Name: "checkout"})
			Expect(err).To(BeNil())

			updated, err := projectSrv.UpdateProject(context.TODO(), adminC1, project.ID, service.ProjectUpdateForm{
				Name:    "checkout-a",
				Version: 1,
			})
			Expect(err).To(BeNil())
			Expect(updated.Version).To(Equal(2))

			_, err = projectSrv.UpdateProject(context.TODO(), adminC1, project.ID, service.ProjectUpdateForm{
				Name:    "checkout-b",
				Version: 1,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrConflict{}))

			current, err := projectSrv.GetProject(context.TODO(), adminC1, project.ID)
			Expect(err).To(BeNil())
			Expect(current.Name).To(Equal("checkout-a"))
		})

		It("forbids a member updating a project", func() {
			project, err := projectSrv.CreateProject(context.TODO(), adminC1, service.ProjectForm{Name: "checkout"})
			Expect(err).To(BeNil())

			_, err = projectSrv.UpdateProject(context.TODO(), memberC1, project.ID, service.ProjectUpdateForm{
				Name:    "renamed",
				Version: 1,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrForbidden{}))
		})

		It("masks a cross-tenant update as not found", func() {
			project, err := projectSrv.CreateProject(context.TODO(), adminC1, service.ProjectForm{Name: "checkout"})
			Expect(err).To(BeNil())

			_, err = projectSrv.UpdateProject(context.TODO(), adminC2, project.ID, service.ProjectUpdateForm{
				Name:    "stolen",
				Version: 1,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("delete", func() {
		It("removes the project and its test cases together", func() {
			project, err := projectSrv.CreateProject(context.TODO(), adminC1, service.ProjectForm{Name: "checkout"})
			Expect(err).To(BeNil())

			for i := 0; i < 3; i++ {
				tx := gormdb.Exec(fmt.Sprintf(insertTestCaseStm, uuid.New(), project.ID, fmt.Sprintf("case-%d", i), 1))
				Expect(tx.Error).To(BeNil())
			}

			Expect(projectSrv.DeleteProject(context.TODO(), adminC1, project.ID)).To(BeNil())

			testCases, err := s.TestCase().List(context.TODO(), project.ID)
			Expect(err).To(BeNil())
			Expect(testCases).To(HaveLen(0))

			_, err = s.Project().Get(context.TODO(), project.ID)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("forbids a member deleting a project", func() {
			project, err := projectSrv.CreateProject(context.TODO(), adminC1, service.ProjectForm{Name: "checkout"})
			Expect(err).To(BeNil())

			err = projectSrv.DeleteProject(context.TODO(), memberC1, project.ID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrForbidden{}))
		})
	})
})
