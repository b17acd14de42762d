package mappers

import (
	"github.com/testlane/testlane/api/v1alpha1"
	"github.com/testlane/testlane/internal/store/model"
)

func UserToApi(user model.User) v1alpha1.User {
	return v1alpha1.User{
		Id:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

func CompanyToApi(company model.Company) v1alpha1.Company {
	return v1alpha1.Company{
		Id:        company.ID,
		Name:      company.Name,
		CreatedAt: company.CreatedAt,
		UpdatedAt: company.UpdatedAt,
	}
}

func MemberToApi(membership model.Membership) v1alpha1.Member {
	return v1alpha1.Member{
		UserId:    membership.UserID,
		CompanyId: membership.CompanyID,
		Role:      membership.Role,
		CreatedAt: membership.CreatedAt,
	}
}

func MemberListToApi(memberships model.MembershipList) v1alpha1.MemberList {
	members := make(v1alpha1.MemberList, 0, len(memberships))
	for _, membership := range memberships {
		members = append(members, MemberToApi(membership))
	}
	return members
}

func ProjectToApi(project model.Project) v1alpha1.Project {
	return v1alpha1.Project{
		Id:          project.ID,
		CompanyId:   project.CompanyID,
		Name:        project.Name,
		Description: project.Description,
		BaseUrl:     project.BaseURL,
		Version:     project.Version,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func ProjectListToApi(projects model.ProjectList) v1alpha1.ProjectList {
	out := make(v1alpha1.ProjectList, 0, len(projects))
	for _, project := range projects {
		out = append(out, ProjectToApi(project))
	}
	return out
}

func testCaseStepsToApi(steps []model.TestCaseStep) []v1alpha1.TestCaseStep {
	out := make([]v1alpha1.TestCaseStep, 0, len(steps))
	for _, step := range steps {
		out = append(out, v1alpha1.TestCaseStep{
			Position:       step.Position,
			Name:           step.Name,
			Action:         step.Action,
			ExpectedResult: step.ExpectedResult,
		})
	}
	return out
}

func TestCaseToApi(testCase model.TestCase) v1alpha1.TestCase {
	out := v1alpha1.TestCase{
		Id:             testCase.ID,
		ProjectId:      testCase.ProjectID,
		Name:           testCase.Name,
		Description:    testCase.Description,
		Steps:          []v1alpha1.TestCaseStep{},
		ExpectedResult: testCase.ExpectedResult,
		Version:        testCase.Version,
		CreatedAt:      testCase.CreatedAt,
		UpdatedAt:      testCase.UpdatedAt,
	}
	if testCase.Steps != nil {
		out.Steps = testCaseStepsToApi(testCase.Steps.Data)
	}
	return out
}

func TestCaseListToApi(testCases model.TestCaseList) v1alpha1.TestCaseList {
	out := make(v1alpha1.TestCaseList, 0, len(testCases))
	for _, testCase := range testCases {
		out = append(out, TestCaseToApi(testCase))
	}
	return out
}
