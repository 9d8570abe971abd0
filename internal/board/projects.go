package board

import (
	"slices"

	"github.com/javiermolinar/classboard/internal/schedule"
)

// Projects returns the registered projects in display order.
func (s *Session) Projects() []schedule.Project {
	return slices.Clone(s.projects)
}

// Project looks a registered project up by id.
func (s *Session) Project(id string) (schedule.Project, bool) {
	i := s.projectIndex(id)
	if i < 0 {
		return schedule.Project{}, false
	}
	return s.projects[i], true
}

// Rows returns the registered projects followed by any project that only
// exists in the schedule data, for example one whose deletion was undone.
func (s *Session) Rows() []schedule.Project {
	rows := slices.Clone(s.projects)
	for _, pid := range s.store.Snapshot().ProjectIDs() {
		if s.projectIndex(pid) < 0 {
			rows = append(rows, schedule.Project{ID: pid, Name: pid})
		}
	}
	return rows
}

// CreateProject registers a new project. The school id is required.
func (s *Session) CreateProject(p schedule.Project) Outcome {
	if p.SchoolID == "" {
		return s.reject("create-project", ReasonInvalidProject, "name", p.Name)
	}
	p.ID = s.newProjectID()
	s.projects = append(s.projects, p)
	s.logger.Debug("applied", "op", "create-project", "project_id", p.ID)
	return Outcome{ProjectID: p.ID}
}

// UpdateProject replaces a registered project's fields.
func (s *Session) UpdateProject(p schedule.Project) Outcome {
	i := s.projectIndex(p.ID)
	if i < 0 {
		return s.reject("update-project", ReasonNotFound, "project_id", p.ID)
	}
	if p.SchoolID == "" {
		return s.reject("update-project", ReasonInvalidProject, "project_id", p.ID)
	}
	s.projects[i] = p
	s.logger.Debug("applied", "op", "update-project", "project_id", p.ID)
	return Outcome{ProjectID: p.ID}
}

// DeleteProject removes a project together with all of its entries. The
// entry removals form a single history batch.
func (s *Session) DeleteProject(id string) Outcome {
	i := s.projectIndex(id)
	entries := s.store.Entries(id)
	if i < 0 && len(entries) == 0 {
		return s.reject("delete-project", ReasonNotFound, "project_id", id)
	}

	var removed []schedule.Entry
	s.commit("delete-project", func() {
		removed = s.store.DeleteAllForProject(id)
	})
	if i >= 0 {
		s.projects = slices.Delete(s.projects, i, i+1)
	}
	return Outcome{Count: len(removed), ProjectID: id}
}

func (s *Session) projectIndex(id string) int {
	return slices.IndexFunc(s.projects, func(p schedule.Project) bool { return p.ID == id })
}
