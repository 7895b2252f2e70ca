package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateOrderSummary(ctx context.Context, data OrderSummaryData) (io.Reader, error) {
	_ = ctx

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(8, "Order Summary", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, data.OrderNumber, props.Text{
			Size:  12,
			Align: align.Right,
			Top:   5,
		}),
	)

	m.AddRow(25,
		col.New(6).Add(
			text.New(data.DistributorName, props.Text{Style: fontstyle.Bold}),
			text.New("Jurisdiction: "+data.Jurisdiction, props.Text{Top: 5}),
		),
		col.New(6).Add(
			text.New("Date: "+data.OrderDate, props.Text{}),
			text.New("Status: "+data.Status, props.Text{Top: 4}),
			text.New("Payment: "+data.PaymentMethod, props.Text{Top: 8}),
			text.New("Tax channel: "+data.TaxChannel, props.Text{Top: 12}),
		),
	)

	m.AddRow(10,
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Free", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range data.Lines {
		m.AddRow(12,
			text.NewCol(5, line.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", line.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, fmt.Sprintf("%d", line.FreeUnits), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	for _, entry := range []struct {
		label string
		value string
		bold  bool
	}{
		{"Subtotal", data.Subtotal, false},
		{"Discount", data.DiscountAmount, false},
		{"Tax", data.TaxAmount, false},
		{"Net amount", data.NetAmount, true},
	} {
		style := fontstyle.Normal
		if entry.bold {
			style = fontstyle.Bold
		}
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, entry.label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, entry.value, props.Text{Size: 9, Align: align.Right, Style: style}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
