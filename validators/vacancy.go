package validators

import "errors"

var (
	ErrVacancyTitleEmpty    = errors.New("no title provided")
	ErrVacancyCompanyEmpty  = errors.New("no company provided")
	ErrVacancyLocationEmpty = errors.New("no location provided")
	ErrVacancyContractEmpty = errors.New("no contract type provided")
	ErrVacancyDescEmpty     = errors.New("no description provided")
)

type VacancyInput struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Salary      string   `json:"salary"`
	Contract    string   `json:"contract"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

func VacancyValidator(in *VacancyInput) error {
	switch {
	case in.Title == "":
		return ErrVacancyTitleEmpty
	case in.Company == "":
		return ErrVacancyCompanyEmpty
	case in.Location == "":
		return ErrVacancyLocationEmpty
	case in.Contract == "":
		return ErrVacancyContractEmpty
	case in.Description == "":
		return ErrVacancyDescEmpty
	}

	return nil
}
