package domain

import (
	"github.com/guardlens/guardlens/internal/domain/value"
)

// ConfigLoader reads the project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// ResultReader reads one evaluator result file. A file may hold several
// documents.
type ResultReader interface {
	Read(path string) ([]value.Value, error)
}

// ManifestLoader reads a list of evaluations from a manifest file.
type ManifestLoader interface {
	Load(path string) ([]Evaluation, error)
}

// ReportStore persists reports and reads back earlier ones.
type ReportStore interface {
	Save(path string, report *Report) error
	Load(path string) (*Report, error)
}

// GitInfo reports the commit a project is checked out at.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
}

// RunHistory stores summaries of past validation runs per project.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}
