package get_daily_occupancy

import (
	"fmt"
	"io"
	"math"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/xlsx"
)

var exportColumns = []string{"Date", "Reservations", "Occupied seat-minutes", "Total seat-minutes", "Occupancy %"}

// WriteXLSX выгружает статистику загрузки в книгу Excel с одним листом
func WriteXLSX(out io.Writer, resp *Response) error {
	w := xlsx.NewWriter()
	defer w.Close()

	if err := w.AddSheet(resp.SpaceName); err != nil {
		return fmt.Errorf("%w: export - add sheet: %v", ErrInternal, err)
	}
	if err := w.WriteHeader(exportColumns); err != nil {
		return fmt.Errorf("%w: export - write header: %v", ErrInternal, err)
	}

	for _, e := range resp.Entries {
		row := []interface{}{
			e.Date.Format(domain.DateFormat),
			e.ReservationsCount,
			e.OccupiedMinutes,
			e.TotalMinutes,
			math.Round(e.Percentage*100) / 100,
		}
		if err := w.WriteRow(row); err != nil {
			return fmt.Errorf("%w: export - write row: %v", ErrInternal, err)
		}
	}

	if err := w.Save(out); err != nil {
		return fmt.Errorf("%w: export - save: %v", ErrInternal, err)
	}
	return nil
}
