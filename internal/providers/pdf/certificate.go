package pdf

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type CertificateData struct {
	Name            string
	TotalHours      string
	TotalActivities int64
	Level           int
	ExperiencePoint int64
	IssueDate       string

	Activities []CertificateActivity
}

type CertificateActivity struct {
	Date         string
	Title        string
	Category     string
	Hours        string
	Organization string
	Location     string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateCertificate(ctx context.Context, data CertificateData) (io.Reader, error) {
	if data.Name == "" {
		return nil, errors.New("certificate holder name is required")
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(30,
		text.NewCol(12, "Certificate of Volunteer Service", props.Text{
			Size:  22,
			Style: fontstyle.Bold,
			Align: align.Center,
			Top:   8,
		}),
	)
	m.AddRow(5, line.NewCol(12))

	m.AddRow(25,
		col.New(12).Add(
			text.New("This certifies that", props.Text{Align: align.Center, Top: 2}),
			text.New(data.Name, props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Center, Top: 9}),
		),
	)

	m.AddRow(20,
		text.NewCol(4, "Verified hours: "+data.TotalHours, props.Text{Align: align.Center, Top: 4}),
		text.NewCol(4, "Activities: "+itoa(data.TotalActivities), props.Text{Align: align.Center, Top: 4}),
		text.NewCol(4, "Level "+itoa(int64(data.Level)), props.Text{Align: align.Center, Top: 4}),
	)

	if len(data.Activities) > 0 {
		m.AddRow(10,
			text.NewCol(2, "Date", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(4, "Activity", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(2, "Category", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(3, "Organization", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(1, "Hours", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
		for _, item := range data.Activities {
			m.AddRow(8,
				text.NewCol(2, item.Date, props.Text{Size: 9}),
				text.NewCol(4, item.Title, props.Text{Size: 9}),
				text.NewCol(2, item.Category, props.Text{Size: 9}),
				text.NewCol(3, item.Organization, props.Text{Size: 9}),
				text.NewCol(1, item.Hours, props.Text{Size: 9, Align: align.Right}),
			)
		}
	}

	m.AddRow(20,
		col.New(8),
		text.NewCol(4, "Issued "+data.IssueDate, props.Text{Size: 9, Align: align.Right, Top: 10}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
