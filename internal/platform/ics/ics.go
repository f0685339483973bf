// Package ics writes minimal RFC 5545 calendars made of all-day events.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const dateStamp = "20060102"

type Calendar struct {
	ProductID string
	Name      string
	Stamp     time.Time
	Events    []Event
}

// Event is an all-day entry; Date is a civil date.
type Event struct {
	UID         string
	Date        time.Time
	Summary     string
	Description string
}

// Write renders the calendar with CRLF line endings.
func Write(w io.Writer, cal Calendar) error {
	ew := &errWriter{w: w}
	ew.line("BEGIN:VCALENDAR")
	ew.line("VERSION:2.0")
	ew.line("PRODID:" + cal.ProductID)
	ew.line("CALSCALE:GREGORIAN")
	if cal.Name != "" {
		ew.line("X-WR-CALNAME:" + escape(cal.Name))
	}
	stamp := cal.Stamp.UTC().Format("20060102T150405Z")
	for _, ev := range cal.Events {
		ew.line("BEGIN:VEVENT")
		ew.line("UID:" + ev.UID)
		ew.line("DTSTAMP:" + stamp)
		ew.line("DTSTART;VALUE=DATE:" + ev.Date.Format(dateStamp))
		ew.line("DTEND;VALUE=DATE:" + ev.Date.AddDate(0, 0, 1).Format(dateStamp))
		ew.line("SUMMARY:" + escape(ev.Summary))
		if ev.Description != "" {
			ew.line("DESCRIPTION:" + escape(ev.Description))
		}
		ew.line("END:VEVENT")
	}
	ew.line("END:VCALENDAR")
	if ew.err != nil {
		return fmt.Errorf("write calendar: %w", ew.err)
	}
	return nil
}

var escaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

func escape(s string) string {
	return escaper.Replace(s)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) line(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s+"\r\n")
}
