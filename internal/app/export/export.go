// Package export writes transcription history to spreadsheet files.
package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
	"github.com/nocdn/transcriptions-ssr/internal/app/model"
)

// ToExcel writes the records to an xlsx file at outputFilePath.
func ToExcel(transcriptions []model.Transcription, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return apperrors.Wrap(err, "failed to create sheet")
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Created At"
	headerRow.AddCell().Value = "Source"
	headerRow.AddCell().Value = "Transcription"

	for _, t := range transcriptions {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(t.ID)
		row.AddCell().Value = t.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = t.Source
		row.AddCell().Value = t.Transcription
	}

	if err := file.Save(outputFilePath); err != nil {
		return apperrors.Wrap(err, "failed to save spreadsheet")
	}
	return nil
}
