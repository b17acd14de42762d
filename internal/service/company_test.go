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

const (
	insertUserStm       = "INSERT INTO users (id, email, name) VALUES ('%s', '%s', '%s');"
	insertMembershipStm = "INSERT INTO memberships (id, user_id, company_id, role) VALUES ('%s', '%s', '%s', '%s');"
)

var _ = Describe("company service", Ordered, func() {
	var (
		s             store.Store
		gormdb        *gorm.DB
		companySrv    *service.CompanyService
		membershipSrv *service.MembershipService

		companyID uuid.UUID
		adminC1   auth.Principal
		memberC1  auth.Principal
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())

		engine := authz.NewEngine(s)
		companySrv = service.NewCompanyService(s, engine)
		membershipSrv = service.NewMembershipService(s, engine)
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		companyID = uuid.New()
		adminC1 = auth.Principal{UserID: uuid.New(), CompanyID: companyID, Role: auth.RoleAdmin}
		memberC1 = auth.Principal{UserID: uuid.New(), CompanyID: companyID, Role: auth.RoleMember}

		tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme"))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertUserStm, adminC1.UserID, "admin@acme.dev", "Admin"))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertMembershipStm, uuid.New(), adminC1.UserID, companyID, model.RoleAdmin))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertUserStm, memberC1.UserID, "member@acme.dev", "Member"))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertMembershipStm, uuid.New(), memberC1.UserID, companyID, model.RoleMember))
		Expect(tx.Error).To(BeNil())
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM memberships;")
		gormdb.Exec("DELETE FROM projects;")
		gormdb.Exec("DELETE FROM users;")
		gormdb.Exec("DELETE FROM companies;")
	})

	Context("company", func() {
		It("lets a member read the company", func() {
			company, err := companySrv.GetCompany(context.TODO(), memberC1)
			Expect(err).To(BeNil())
			Expect(company.Name).To(Equal("acme"))
		})

		It("forbids a member renaming the company", func() {
			_, err := companySrv.UpdateCompany(context.TODO(), memberC1, "evil corp")
			Expect(err).To(BeAssignableToTypeOf(&service.ErrForbidden{}))
		})

		It("lets an admin rename the company", func() {
			company, err := companySrv.UpdateCompany(context.TODO(), adminC1, "acme inc")
			Expect(err).To(BeNil())
			Expect(company.Name).To(Equal("acme inc"))
		})

		It("blocks deletion while projects remain", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertProjectStm, uuid.New(), companyID, "checkout", 1))
			Expect(tx.Error).To(BeNil())

			err := companySrv.DeleteCompany(context.TODO(), adminC1)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidationFailed{}))

			company, err := companySrv.GetCompany(context.TODO(), adminC1)
			Expect(err).To(BeNil())
			Expect(company).ToNot(BeNil())
		})

		It("deletes an empty company together with its memberships", func() {
			Expect(companySrv.DeleteCompany(context.TODO(), adminC1)).To(BeNil())

			_, err := s.Company().Get(context.TODO(), companyID)
			Expect(err).To(MatchError(store.ErrRecordNotFound))

			_, err = s.Membership().GetByUser(context.TODO(), memberC1.UserID)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("members", func() {
		It("lists the company members for any role", func() {
			members, err := membershipSrv.ListMembers(context.TODO(), memberC1)
			Expect(err).To(BeNil())
			Expect(members).To(HaveLen(2))
		})

		It("lets an admin invite a registered user", func() {
			newUserID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertUserStm, newUserID, "new@acme.dev", "New"))
			Expect(tx.Error).To(BeNil())

			membership, err := membershipSrv.AddMember(context.TODO(), adminC1, "new@acme.dev", auth.RoleMember)
			Expect(err).To(BeNil())
			Expect(membership.UserID).To(Equal(newUserID))
			Expect(membership.CompanyID).To(Equal(companyID))
		})

		It("forbids a member inviting anyone", func() {
			_, err := membershipSrv.AddMember(context.TODO(), memberC1, "new@acme.dev", auth.RoleMember)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrForbidden{}))
		})

		It("rejects inviting a user who already belongs to a company", func() {
			_, err := membershipSrv.AddMember(context.TODO(), adminC1, "member@acme.dev", auth.RoleAdmin)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidationFailed{}))
		})

		It("lets an admin change a member's role", func() {
			membership, err := membershipSrv.UpdateMemberRole(context.TODO(), adminC1, memberC1.UserID, auth.RoleAdmin)
			Expect(err).To(BeNil())
			Expect(membership.Role).To(Equal(model.RoleAdmin))
		})

		It("refuses removing yourself", func() {
			err := membershipSrv.RemoveMember(context.TODO(), adminC1, adminC1.UserID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidationFailed{}))
		})

		It("removes another member", func() {
			Expect(membershipSrv.RemoveMember(context.TODO(), adminC1, memberC1.UserID)).To(BeNil())

			_, err := s.Membership().GetByUser(context.TODO(), memberC1.UserID)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})
})
