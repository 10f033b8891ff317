package scenario

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"govos/internal/document"
)

// ExcelMissionRate is the share of generated scenarios that are spreadsheet
// missions.
const ExcelMissionRate = 0.3

// Draft holds the facts decided locally before the model is asked to dress
// them up. The model never chooses identity numbers, copy counts or records.
type Draft struct {
	Day         int
	Mission     document.MissionType
	DocType     document.DocType
	Label       string
	HasPeriod   bool
	IsList      bool
	RRNFront    string
	RRNBack     string
	PhoneNumber string
	Copies      int
	Variant     document.Variant
	Disclosure  document.Disclosure
	Delivery    document.DeliveryMethod

	BaseAddress   string
	AddressDetail string
	PeriodStart   string
	PeriodEnd     string

	History []document.HistoryRecord
}

var (
	districts = []string{"종로구", "강남구", "서초구", "마포구", "송파구", "영등포구", "용산구", "성동구"}

	// print is listed three times so it is drawn half of the time.
	deliveryWeights = []document.DeliveryMethod{
		document.DeliveryPrint, document.DeliveryPrint, document.DeliveryPrint,
		document.DeliveryElectronicWallet, document.DeliveryPDF, document.DeliveryFax,
	}

	ports    = []string{"인천공항", "김포공항", "부산항", "김해공항"}
	taxes    = []string{"자동차세", "재산세(토지)", "재산세(주택)", "주민세", "취득세"}
	vaccines = []string{"화이자", "모더나", "아스트라제네카", "노바백스"}
	doseDays = []string{"2021-06-15", "2021-09-20", "2022-02-10", "2022-12-05"}

	won = message.NewPrinter(language.Korean)
)

func pick[T any](r *rand.Rand, xs []T) T {
	return xs[r.IntN(len(xs))]
}

// between returns a uniform int in [lo, hi].
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// newDraft rolls the local facts for a day's scenario.
func newDraft(r *rand.Rand, day int, now time.Time) Draft {
	d := Draft{Day: day, Mission: document.MissionIssue}
	if r.Float64() < ExcelMissionRate {
		d.Mission = document.MissionExcel
	}

	d.DocType = pick(r, document.Issuable())
	spec, _ := document.Lookup(d.DocType)
	d.Label = spec.Label
	d.HasPeriod = spec.HasPeriod
	d.IsList = spec.IsListSelection

	id := randomIdentity(r)
	d.RRNFront, d.RRNBack, d.PhoneNumber = id.RRNFront, id.RRNBack, id.PhoneNumber
	d.Copies = between(r, 1, 3)
	d.Variant = document.VariantGeneral
	if r.IntN(2) == 1 {
		d.Variant = document.VariantDetailed
	}
	d.Disclosure = document.DisclosureMasked
	if r.IntN(2) == 1 {
		d.Disclosure = document.DisclosureUnmasked
	}
	d.Delivery = pick(r, deliveryWeights)

	d.BaseAddress = fmt.Sprintf("서울특별시 %s 세종대로 %d", pick(r, districts), between(r, 1, 100))
	d.AddressDetail = fmt.Sprintf("%d동 %d호", between(r, 1, 20), between(r, 100, 1599))

	if d.HasPeriod {
		start := time.Date(now.Year()-between(r, 1, 3), time.Month(between(r, 1, 12)), between(r, 1, 28), 0, 0, 0, 0, time.UTC)
		d.PeriodStart = start.Format(time.DateOnly)
		d.PeriodEnd = now.Format(time.DateOnly)
	}

	switch d.DocType {
	case document.ImmigrationLog:
		d.History = immigrationHistory(r)
	case document.TaxLocal:
		d.History = taxHistory(r)
	case document.VaccineCert:
		d.History = vaccineHistory(r)
	}
	return d
}

// Identity is a generated national id and phone number.
type Identity struct {
	RRNFront    string
	RRNBack     string
	PhoneNumber string
}

// randomIdentity draws a birth date between 1950 and 2005. The first digit of
// the back part encodes gender and century.
func randomIdentity(r *rand.Rand) Identity {
	year := between(r, 1950, 2005)
	month := between(r, 1, 12)
	day := between(r, 1, 28)

	gender := between(r, 1, 2)
	if year >= 2000 {
		gender += 2
	}
	return Identity{
		RRNFront:    fmt.Sprintf("%02d%02d%02d", year%100, month, day),
		RRNBack:     fmt.Sprintf("%d%06d", gender, between(r, 100000, 999999)),
		PhoneNumber: fmt.Sprintf("010-%04d-%04d", between(r, 1000, 9999), between(r, 1000, 9999)),
	}
}

func immigrationHistory(r *rand.Rand) []document.HistoryRecord {
	trips := between(r, 3, 6)
	records := make([]document.HistoryRecord, 0, trips*2)
	for range trips {
		out := time.Date(between(r, 2018, 2024), time.Month(between(r, 1, 11)), between(r, 1, 25), 0, 0, 0, 0, time.UTC)
		back := out.AddDate(0, 0, between(r, 2, 11))
		records = append(records,
			document.HistoryRecord{Date: out.Format(time.DateOnly), Category: "출국", Detail: pick(r, ports)},
			document.HistoryRecord{Date: back.Format(time.DateOnly), Category: "입국", Detail: pick(r, ports)},
		)
	}
	return newestFirst(records)
}

func taxHistory(r *rand.Rand) []document.HistoryRecord {
	var records []document.HistoryRecord
	for year := 2020; year <= 2024; year++ {
		for _, tax := range taxes {
			if r.Float64() <= 0.3 {
				continue
			}
			records = append(records, document.HistoryRecord{
				Date:     fmt.Sprintf("%d-%02d-%02d", year, between(r, 1, 12), between(r, 1, 28)),
				Category: tax,
				Detail:   won.Sprintf("%d원", between(r, 5, 54)*10000),
			})
		}
	}
	return newestFirst(records)
}

// vaccineHistory records consecutive doses of one vaccine, stopping early
// with probability 0.2 before each dose.
func vaccineHistory(r *rand.Rand) []document.HistoryRecord {
	vaccine := pick(r, vaccines)
	var records []document.HistoryRecord
	for i, date := range doseDays {
		if r.Float64() > 0.8 {
			break
		}
		records = append(records, document.HistoryRecord{
			Date:     date,
			Category: vaccine,
			Detail:   fmt.Sprintf("%d차 접종", i+1),
		})
	}
	return records
}

func newestFirst(records []document.HistoryRecord) []document.HistoryRecord {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date > records[j].Date })
	return records
}
