package converter

import (
	"time"

	"lab-seat-reservation/internal/infra/pgquery"
	"lab-seat-reservation/internal/pkg/pgconv"
	"lab-seat-reservation/internal/usecase/queries"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jinzhu/copier"
)

var rowCopyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: pgtype.Timestamptz{},
			DstType: time.Time{},
			Fn: func(src any) (any, error) {
				return pgconv.TimeFromPgtype(src.(pgtype.Timestamptz)), nil
			},
		},
		{
			SrcType: int32(0),
			DstType: int(0),
			Fn: func(src any) (any, error) {
				return int(src.(int32)), nil
			},
		},
	},
}

func VenueToView(row pgquery.Venues) (*queries.VenueView, error) {
	view := &queries.VenueView{}
	if err := copier.CopyWithOption(view, &row, rowCopyOption); err != nil {
		return nil, err
	}
	return view, nil
}

func VenueToSnapshot(row pgquery.Venues) *shared.VenueSnapshot {
	return &shared.VenueSnapshot{
		ID:         row.ID,
		Name:       row.Name,
		Location:   row.Location,
		SeatLabels: row.SeatLabels,
		ImageURL:   row.ImageURL,
	}
}
