// Package charts holds the demo business datasets and turns them into chart
// descriptions that a Renderer can draw.
package charts

import (
	"context"
	"fmt"
	"strings"
)

type Type string

const (
	Line Type = "line"
	Bar  Type = "bar"
	Pie  Type = "pie"
)

// Types lists the supported chart types in menu order.
func Types() []Type {
	return []Type{Line, Bar, Pie}
}

// ParseType accepts a chart type name in any case. An empty name means Line.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Line, nil
	}

	for _, t := range Types() {
		if string(t) == name {
			return t, nil
		}
	}

	return "", fmt.Errorf("unsupported chart type %q (use line, bar or pie)", name)
}

// Slice is one named share of a pie chart.
type Slice struct {
	Name  string
	Value float64
}

// Data is the demo business dataset.
type Data struct {
	Months           []string
	Revenue          []float64
	Expenses         []float64
	Customers        []float64
	Departments      []string
	DepartmentBudget []float64
	CustomerGrowth   []Slice
}

// SampleData returns the demo dataset of a small company.
func SampleData() *Data {
	return &Data{
		Months:           []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Revenue:          []float64{45000, 52000, 48000, 61000, 55000, 67000, 72000, 69000, 75000, 78000, 82000, 85000},
		Expenses:         []float64{35000, 42000, 38000, 45000, 41000, 48000, 52000, 49000, 53000, 55000, 58000, 60000},
		Customers:        []float64{120, 135, 128, 155, 142, 168, 175, 162, 185, 192, 205, 218},
		Departments:      []string{"Sales", "Marketing", "Development", "Support", "HR"},
		DepartmentBudget: []float64{35000, 25000, 45000, 20000, 15000},
		CustomerGrowth: []Slice{
			{Name: "New Customers", Value: 35},
			{Name: "Returning Customers", Value: 25},
			{Name: "Referrals", Value: 20},
			{Name: "Organic Growth", Value: 20},
		},
	}
}

type Series struct {
	Name   string
	Values []float64
}

// Chart is a renderer-neutral chart: one value per category for every series.
type Chart struct {
	Type       Type
	Title      string
	Categories []string
	Series     []Series
}

// Build picks the part of data shown by a chart of type t.
func Build(t Type, data *Data) (Chart, error) {
	if data == nil {
		return Chart{}, fmt.Errorf("no chart data loaded")
	}

	switch t {
	case Line:
		if err := sameLength(len(data.Months), data.Revenue, data.Expenses); err != nil {
			return Chart{}, err
		}
		return Chart{
			Type:       Line,
			Title:      "Monthly Revenue & Expenses",
			Categories: data.Months,
			Series: []Series{
				{Name: "Revenue", Values: data.Revenue},
				{Name: "Expenses", Values: data.Expenses},
			},
		}, nil

	case Bar:
		if err := sameLength(len(data.Departments), data.DepartmentBudget); err != nil {
			return Chart{}, err
		}
		return Chart{
			Type:       Bar,
			Title:      "Department Budget Allocation",
			Categories: data.Departments,
			Series:     []Series{{Name: "Budget", Values: data.DepartmentBudget}},
		}, nil

	case Pie:
		names := make([]string, 0, len(data.CustomerGrowth))
		values := make([]float64, 0, len(data.CustomerGrowth))
		for _, s := range data.CustomerGrowth {
			names = append(names, s.Name)
			values = append(values, s.Value)
		}
		return Chart{
			Type:       Pie,
			Title:      "Customer Growth Distribution",
			Categories: names,
			Series:     []Series{{Name: "Share", Values: values}},
		}, nil

	default:
		return Chart{}, fmt.Errorf("unsupported chart type %q", t)
	}
}

func sameLength(n int, series ...[]float64) error {
	for _, s := range series {
		if len(s) != n {
			return fmt.Errorf("series has %d values for %d categories", len(s), n)
		}
	}
	return nil
}

// Renderer draws a chart on some display surface.
type Renderer interface {
	RenderChart(ctx context.Context, chart Chart) error
}
