package storage

import "estate-intel/models"

// ReportBuilder renders a report into workbook bytes.
type ReportBuilder interface {
	Build(report *models.Report) ([]byte, error)
}

// ReportWriter persists a rendered report.
type ReportWriter interface {
	Write(report *models.Report) error
}
