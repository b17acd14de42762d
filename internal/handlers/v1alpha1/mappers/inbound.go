package mappers

import (
	"github.com/testlane/testlane/api/v1alpha1"
	"github.com/testlane/testlane/internal/service"
	"github.com/testlane/testlane/internal/store/model"
)

func RegisterFormApi(resource v1alpha1.RegisterRequest) service.RegisterForm {
	return service.RegisterForm{
		Email:       resource.Email,
		Name:        resource.Name,
		Password:    resource.Password,
		CompanyName: resource.CompanyName,
	}
}

func ProjectFormApi(resource v1alpha1.ProjectCreate) service.ProjectForm {
	return service.ProjectForm{
		Name:        resource.Name,
		Description: resource.Description,
		BaseURL:     resource.BaseUrl,
	}
}

func ProjectUpdateFormApi(resource v1alpha1.ProjectUpdate) service.ProjectUpdateForm {
	return service.ProjectUpdateForm{
		Name:        resource.Name,
		Description: resource.Description,
		BaseURL:     resource.BaseUrl,
		Version:     resource.Version,
	}
}

func testCaseStepsApi(steps []v1alpha1.TestCaseStep) []model.TestCaseStep {
	out := make([]model.TestCaseStep, 0, len(steps))
	for _, step := range steps {
		out = append(out, model.TestCaseStep{
			Position:       step.Position,
			Name:           step.Name,
			Action:         step.Action,
			ExpectedResult: step.ExpectedResult,
		})
	}
	return out
}

func TestCaseFormApi(resource v1alpha1.TestCaseCreate) service.TestCaseForm {
	return service.TestCaseForm{
		Name:           resource.Name,
		Description:    resource.Description,
		Steps:          testCaseStepsApi(resource.Steps),
		ExpectedResult: resource.ExpectedResult,
	}
}

func TestCaseUpdateFormApi(resource v1alpha1.TestCaseUpdate) service.TestCaseUpdateForm {
	return service.TestCaseUpdateForm{
		Name:           resource.Name,
		Description:    resource.Description,
		Steps:          testCaseStepsApi(resource.Steps),
		ExpectedResult: resource.ExpectedResult,
		Version:        resource.Version,
	}
}
