// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/humanize"

	"github.com/wneessen/bestbikeday/internal/forecast"
)

func (p *Presenter) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"timeFormat":    p.timeFormat,
		"localizedTime": p.localizedTime,
		"floatFormat":   p.floatFormat,
		"loc":           p.loc,
		"lc":            strings.ToLower,
		"uc":            strings.ToUpper,
		"pad":           pad,
		"percent":       percent,
		"bandColor":     BandColor,
		"sky":           p.skyLabel,
	}
}

func (p *Presenter) loc(val string) string {
	val = strings.ToLower(val)
	if raw, ok := i18nVars[val]; ok {
		return p.localizer.Get(raw)
	}
	return val
}

func (p *Presenter) localizedTime(val time.Time) string {
	return p.humanizer.FormatTime(val, humanize.TimeFormat)
}

func (p *Presenter) timeFormat(val time.Time, layout string) string {
	return val.Format(layout)
}

func (p *Presenter) skyLabel(sky forecast.SkyCondition) string {
	return p.localizer.Get(SkyLabels[sky])
}

func (p *Presenter) floatFormat(val float64, precision int) string {
	pow := math.Pow(10, float64(precision))
	return fmt.Sprintf("%.*f", precision, math.Trunc(val*pow)/pow)
}

// percent renders a composite score as a whole percentage.
func percent(score float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(score))
}

// pad fills val with spaces up to the given display width, counting wide runes such as emoji
// as two columns.
func pad(val string, width int) string {
	return runewidth.FillRight(val, width)
}
