// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/bestbikeday/internal/config"
	"github.com/wneessen/bestbikeday/internal/forecast"
	"github.com/wneessen/bestbikeday/internal/geo"
)

// dateLabelFormat renders e.g. "Monday, 6 January"
const dateLabelFormat = "l, j F"

// DayView wraps a scored day with presentation-related fields.
type DayView struct {
	forecast.ScoredDay

	DateLabel   string
	BandLabel   string
	BandColor   string
	SkyLabel    string
	SkyIcon     string
	Description string

	SunriseTime   time.Time
	SunsetTime    time.Time
	MoonPhase     string
	MoonPhaseIcon string

	IsBest bool
}

type TemplateContext struct {
	Location   string
	Latitude   float64
	Longitude  float64
	Timezone   string
	UpdateTime time.Time

	Days    []DayView
	Best    DayView
	HasBest bool
}

// Output holds the rendered summary and one rendered line per day.
type Output struct {
	Summary string
	Days    []string
}

type Presenter struct {
	localizer  *spreak.Localizer
	humanizer  *humanize.Humanizer
	dayTpl     *template.Template
	summaryTpl *template.Template
}

// New parses the configured templates and verifies that they render against a sample context.
func New(conf *config.Config, loc *spreak.Localizer) (*Presenter, error) {
	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer: %w", err)
	}
	pres := &Presenter{
		localizer: loc,
		humanizer: collection.CreateHumanizer(loc.Language()),
	}

	pres.dayTpl, err = template.New("day").Funcs(pres.templateFuncMap()).Parse(conf.Templates.Day)
	if err != nil {
		return nil, fmt.Errorf("failed to parse day template: %w", err)
	}
	pres.summaryTpl, err = template.New("summary").Funcs(pres.templateFuncMap()).Parse(conf.Templates.Summary)
	if err != nil {
		return nil, fmt.Errorf("failed to parse summary template: %w", err)
	}

	if _, err = pres.Render(pres.sampleContext()); err != nil {
		return nil, err
	}
	return pres, nil
}

// BuildContext turns rated days into a template context. Days are labeled in zone.
func (p *Presenter) BuildContext(name string, coords geo.Coordinate, zone *time.Location, updated time.Time,
	days []forecast.ScoredDay,
) TemplateContext {
	if zone == nil {
		zone = time.UTC
	}
	tplCtx := TemplateContext{
		Location:   name,
		Latitude:   coords.Lat,
		Longitude:  coords.Lon,
		Timezone:   zone.String(),
		UpdateTime: updated,
		Days:       make([]DayView, 0, len(days)),
	}

	best, hasBest := forecast.Best(days)
	for _, day := range days {
		view := p.dayView(day, coords, zone)
		if hasBest && day.Date == best.Date {
			view.IsBest = true
			tplCtx.Best = view
			tplCtx.HasBest = true
		}
		tplCtx.Days = append(tplCtx.Days, view)
	}
	return tplCtx
}

// Render executes the summary template once and the day template for every day.
func (p *Presenter) Render(tplCtx TemplateContext) (Output, error) {
	var out Output
	buf := bytes.NewBuffer(nil)
	if err := p.summaryTpl.Execute(buf, tplCtx); err != nil {
		return out, fmt.Errorf("failed to render summary template: %w", err)
	}
	out.Summary = buf.String()

	out.Days = make([]string, 0, len(tplCtx.Days))
	for _, day := range tplCtx.Days {
		buf.Reset()
		if err := p.dayTpl.Execute(buf, day); err != nil {
			return out, fmt.Errorf("failed to render day template: %w", err)
		}
		out.Days = append(out.Days, buf.String())
	}
	return out, nil
}

// Write renders tplCtx and writes the summary followed by one line per day to w.
func (p *Presenter) Write(w io.Writer, tplCtx TemplateContext) error {
	out, err := p.Render(tplCtx)
	if err != nil {
		return err
	}
	lines := append([]string{out.Summary}, out.Days...)
	if _, err = io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// BandLabel returns the localized label of a band.
func (p *Presenter) BandLabel(band forecast.Band) string {
	label, ok := BandLabels[band]
	if !ok {
		label = BandLabels[forecast.BandPoor]
	}
	return p.localizer.Get(label)
}

func (p *Presenter) dayView(day forecast.ScoredDay, coords geo.Coordinate, zone *time.Location) DayView {
	noon := day.Date.In(zone).Add(12 * time.Hour)
	view := DayView{
		ScoredDay:   day,
		DateLabel:   p.humanizer.FormatTime(noon, dateLabelFormat),
		BandLabel:   p.BandLabel(day.Band),
		BandColor:   BandColor(day.Band),
		SkyLabel:    p.skyLabel(day.Representative.Sky),
		SkyIcon:     SkyIcons[day.Representative.Sky],
		Description: day.Representative.Description,
	}
	if view.Description == "" {
		view.Description = view.SkyLabel
	}

	rise, set := sunrise.SunriseSunset(coords.Lat, coords.Lon, day.Date.Year, day.Date.Month, day.Date.Day)
	view.SunriseTime, view.SunsetTime = rise.In(zone), set.In(zone)

	phase := moonphase.New(noon).PhaseName()
	view.MoonPhase = p.loc(phase)
	view.MoonPhaseIcon = MoonPhaseIcon[phase]
	return view
}

// sampleContext is used to verify user templates at startup.
func (p *Presenter) sampleContext() TemplateContext {
	coords := geo.Coordinate{Lat: -33.9249, Lon: 18.4241}
	now := time.Now()
	day := forecast.Score(forecast.DayBucket{
		Date:    forecast.DateOf(now),
		Samples: 1,
		Representative: forecast.Reading{
			Time:        now,
			Temperature: 20,
			WindSpeed:   10,
			Sky:         forecast.SkyClear,
			Description: "clear sky",
		},
	})
	return p.BuildContext("Cape Town", coords, time.UTC, now, []forecast.ScoredDay{day})
}
