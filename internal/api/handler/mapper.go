package handler

import (
	"time"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(d registrationData) ports.RegisterInput {
	in := ports.RegisterInput{
		Email:                d.Email,
		Password:             d.Password,
		PasswordConfirmation: d.PasswordConfirmation,
		FirstName:            d.FirstName,
		LastName:             d.LastName,
		DepartmentID:         d.DepartmentID,
	}
	if d.Patronymic != nil {
		in.Patronymic = *d.Patronymic
	}
	return in
}

func toResumeContent(r resumeContentRequest) domain.ResumeContent {
	return domain.ResumeContent{
		CurrentPosition: r.CurrentPosition,
		DesiredPosition: r.DesiredPosition,
		Experience:      r.Experience,
		Bio:             r.Bio,
		Skills:          r.Skills,
	}
}

func toResumeUpdate(r resumeUpdateRequest) domain.ResumeUpdate {
	return domain.ResumeUpdate{
		CurrentPosition: r.CurrentPosition,
		DesiredPosition: r.DesiredPosition,
		Experience:      r.Experience,
		Bio:             r.Bio,
		Skills:          r.Skills,
	}
}

func toResumeOwnerFilter(f *resumeFiltersForApplicant) ports.ResumeOwnerFilter {
	if f == nil {
		return ports.ResumeOwnerFilter{}
	}
	return ports.ResumeOwnerFilter{States: toStates(f.States), IDs: f.IDs}
}

func toResumeFilter(f *resumeFiltersForManager) ports.ResumeFilter {
	if f == nil {
		return ports.ResumeFilter{}
	}
	return ports.ResumeFilter{
		FullName:        deref(f.FullName),
		DepartmentIDs:   f.DepartmentIDs,
		CurrentPosition: deref(f.CurrentPosition),
		DesiredPosition: deref(f.DesiredPosition),
		ExperienceGTE:   f.ExperienceGTE,
	}
}

func toVacancyContent(d vacancyData) domain.VacancyContent {
	return domain.VacancyContent{
		Position:    d.Position,
		Experience:  d.Experience,
		Description: d.Description,
	}
}

func toVacancyUpdate(d vacancyUpdateData) domain.VacancyUpdate {
	return domain.VacancyUpdate{
		Position:    d.Position,
		Experience:  d.Experience,
		Description: d.Description,
	}
}

func toVacancyFilter(f vacancyFilters) ports.VacancyFilter {
	return ports.VacancyFilter{
		Position:      deref(f.Position),
		ExperienceGTE: f.ExperienceGTE,
		ExperienceLTE: f.ExperienceLTE,
		PublishedGTE:  parseDate(f.PublishedGTE),
		PublishedLTE:  parseDate(f.PublishedLTE),
	}
}

func toManagerVacancyFilter(f *vacancyFiltersForManager) ports.VacancyFilter {
	if f == nil {
		return ports.VacancyFilter{}
	}
	out := toVacancyFilter(f.vacancyFilters)
	out.States = toStates(f.States)
	return out
}

func toApplicantVacancyFilter(f *vacancyFiltersForApplicant) ports.VacancyFilter {
	if f == nil {
		return ports.VacancyFilter{}
	}
	out := toVacancyFilter(f.vacancyFilters)
	out.DepartmentIDs = f.DepartmentIDs
	return out
}

func toApplicantFilter(f *applicantFilters) ports.ApplicantFilter {
	if f == nil {
		return ports.ApplicantFilter{}
	}
	return ports.ApplicantFilter{
		Email:         deref(f.Email),
		FullName:      deref(f.FullName),
		DepartmentIDs: f.DepartmentIDs,
	}
}

func toStates(in []string) []domain.State {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.State, len(in))
	for i, s := range in {
		out[i] = domain.State(s)
	}
	return out
}

// parseDate reads a date already checked by the validator.
func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil
	}
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// --- Domain → RPC result ---

func toDepartmentResponse(d *domain.Department) departmentResponse {
	if d == nil {
		return departmentResponse{}
	}
	return departmentResponse{ID: d.ID, Name: d.Name}
}

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Department: toDepartmentResponse(u.Department),
		Role:       string(u.Role),
	}
	if u.Department == nil {
		resp.Department.ID = u.DepartmentID
	}
	if u.Patronymic != "" {
		p := u.Patronymic
		resp.Patronymic = &p
	}
	return resp
}

func toShortApplicant(u *domain.User) shortApplicantResponse {
	resp := shortApplicantResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName(),
		Department: toDepartmentResponse(u.Department),
	}
	if u.Department == nil {
		resp.Department.ID = u.DepartmentID
	}
	return resp
}

func skillsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toResumeForApplicant(r *domain.Resume) resumeForApplicantResponse {
	return resumeForApplicantResponse{
		ID:              r.ID,
		State:           string(r.State),
		CurrentPosition: r.CurrentPosition,
		DesiredPosition: r.DesiredPosition,
		Skills:          skillsOrEmpty(r.Skills),
		Experience:      r.Experience,
		Bio:             r.Bio,
		CreatedAt:       r.CreatedAt.UTC(),
		PublishedAt:     utc(r.PublishedAt),
	}
}

func toResumeForManager(r *domain.Resume) resumeForManagerResponse {
	resp := resumeForManagerResponse{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		CurrentPosition: r.CurrentPosition,
		DesiredPosition: r.DesiredPosition,
		Skills:          skillsOrEmpty(r.Skills),
		Experience:      r.Experience,
		Bio:             r.Bio,
		PublishedAt:     utc(r.PublishedAt),
	}
	if r.Owner != nil {
		resp.OwnerFullName = r.Owner.FullName()
		resp.DepartmentID = r.Owner.DepartmentID
		if r.Owner.Department != nil {
			resp.DepartmentName = r.Owner.Department.Name
		}
	}
	return resp
}

// creatorOf tolerates vacancies loaded without their creator.
func creatorOf(v *domain.Vacancy) *domain.User {
	if v.Creator != nil {
		return v.Creator
	}
	return &domain.User{ID: v.CreatorID}
}

func toVacancyForManager(v *domain.Vacancy) vacancyForManagerResponse {
	return vacancyForManagerResponse{
		ID:          v.ID,
		State:       string(v.State),
		Creator:     toUserResponse(creatorOf(v)),
		Position:    v.Position,
		Experience:  v.Experience,
		Description: v.Description,
		CreatedAt:   v.CreatedAt.UTC(),
		PublishedAt: utc(v.PublishedAt),
	}
}

func toShortVacancyForManager(v *domain.Vacancy) shortVacancyForManagerResponse {
	creator := creatorOf(v)
	return shortVacancyForManagerResponse{
		ID:              v.ID,
		State:           string(v.State),
		CreatorID:       v.CreatorID,
		CreatorFullName: creator.FullName(),
		Position:        v.Position,
		Experience:      v.Experience,
		PublishedAt:     utc(v.PublishedAt),
	}
}

func toShortVacancyForApplicant(v *domain.Vacancy) shortVacancyForApplicantResponse {
	creator := creatorOf(v)
	dep := toDepartmentResponse(creator.Department)
	return shortVacancyForApplicantResponse{
		ID:              v.ID,
		CreatorID:       v.CreatorID,
		CreatorFullName: creator.FullName(),
		DepartmentID:    creator.DepartmentID,
		DepartmentName:  dep.Name,
		Position:        v.Position,
		Experience:      v.Experience,
		PublishedAt:     utc(v.PublishedAt),
	}
}

func toVacancyForApplicant(v *domain.Vacancy) vacancyForApplicantResponse {
	creator := creatorOf(v)
	dep := toDepartmentResponse(creator.Department)
	return vacancyForApplicantResponse{
		ID:              v.ID,
		CreatorID:       v.CreatorID,
		CreatorFullName: creator.FullName(),
		CreatorContact:  creator.Email,
		DepartmentID:    creator.DepartmentID,
		DepartmentName:  dep.Name,
		Position:        v.Position,
		Experience:      v.Experience,
		Description:     v.Description,
		PublishedAt:     utc(v.PublishedAt),
	}
}

func toVacancyResponse(r *domain.VacancyResponse) vacancyResponseResponse {
	resp := vacancyResponseResponse{
		ID:        r.ID,
		VacancyID: r.VacancyID,
		ResumeID:  r.ResumeID,
		Message:   r.ApplicantMessage,
		CreatedAt: r.CreatedAt.UTC(),
	}
	if r.Vacancy != nil {
		resp.VacancyPosition = r.Vacancy.Position
	}
	if r.Resume != nil {
		resp.ApplicantID = r.Resume.OwnerID
		if r.Resume.Owner != nil {
			resp.ApplicantFullName = r.Resume.Owner.FullName()
			resp.ApplicantContact = r.Resume.Owner.Email
		}
	}
	return resp
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
