// Package legacy is the adapter for occasion records saved in the old (V1)
// schema. Detection is heuristic field sniffing over the raw document, so the
// package works on generic JSON maps rather than the typed record; it is the
// only place in the codebase allowed to do so.
//
// The downgrade (current -> V1) is lossy: the regular/special pull-tab split
// and the per-category over/short figures collapse into combined totals and
// cannot be reconstructed from an exported V1 record.
package legacy

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Document is a raw occasion record of unknown schema version. Decode with
// Parse so numbers survive as json.Number instead of float64.
type Document = map[string]interface{}

// Parse decodes raw JSON into a Document without losing numeric precision.
func Parse(raw []byte) (Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// IsLegacy reports whether a raw record is in the old schema. All signals are
// weak; any one of them triggers migration:
//   - a root-level progressive object outside the occasion sub-record
//   - an occasion "birthdays" field with no "birthdayBOGOs"
//   - a financial block with "totalElectronicSales" but no "bingoNetDeposit"
//
// A record matching none of these passes through unmodified even if it is
// old or malformed in other ways; stricter schema validation is the caller's
// job.
func IsLegacy(doc Document) bool {
	if doc == nil {
		return false
	}
	occ := getMap(doc, "occasion")
	fin := getMap(doc, "financial")

	// A bare "progressive": null is not a signal; only an actual object
	// outside the occasion marks the old layout.
	if getMap(doc, "progressive") != nil {
		if _, inOcc := occ["progressive"]; !inOcc {
			return true
		}
	}
	if _, hasBirthdays := occ["birthdays"]; hasBirthdays {
		if _, hasBOGOs := occ["birthdayBOGOs"]; !hasBOGOs {
			return true
		}
	}
	if _, hasOld := fin["totalElectronicSales"]; hasOld {
		if _, hasNew := fin["bingoNetDeposit"]; !hasNew {
			return true
		}
	}
	return false
}

// Upgrade rewrites a V1 record into the current schema. The flat legacy
// financial block is expanded into the full summary by recomputing every
// derived total from the record's own money counts, pull-tabs, and games
// with the same formulas the engine uses at runtime.
func Upgrade(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := Document{
		"occasion":   upgradeOccasion(getMap(doc, "occasion"), getMap(doc, "progressive")),
		"paperBingo": orEmpty(doc["paperBingo"]),
		"posSales":   upgradePOSSales(getMap(doc, "posSales")),
		"electronic": orEmpty(doc["electronic"]),
		"games":      orEmptySlice(doc["games"]),
		"pullTabs":   orEmptySlice(doc["pullTabs"]),
		"moneyCount": orEmpty(doc["moneyCount"]),
		"financial":  upgradeFinancial(doc),
	}
	for _, k := range []string{"id", "created", "modified"} {
		if v, ok := doc[k]; ok {
			out[k] = v
		}
	}
	return out
}

func upgradeOccasion(occ, rootProg Document) Document {
	out := Document{}
	for k, v := range occ {
		out[k] = v
	}
	if v, ok := out["birthdays"]; ok {
		if _, has := out["birthdayBOGOs"]; !has {
			out["birthdayBOGOs"] = v
		}
		delete(out, "birthdays")
	}
	if _, has := out["progressive"]; !has && rootProg != nil {
		ballsNeeded := num(rootProg["ballsNeeded"])
		if ballsNeeded.IsZero() {
			ballsNeeded = decimal.NewFromInt(21)
		}
		ballsActual := num(rootProg["ballsActual"])
		if ballsActual.IsZero() {
			ballsActual = ballsNeeded
		}
		out["progressive"] = Document{
			"jackpot":     num(rootProg["jackpot"]),
			"ballsNeeded": ballsNeeded,
			"ballsActual": ballsActual,
			"consolation": num(rootProg["consolation"]),
		}
	}
	return out
}

func upgradePOSSales(pos Document) Document {
	out := Document{}
	for k, v := range pos {
		out[k] = v
	}
	if bp := getMap(pos, "birthday-pack"); bp != nil {
		out["birthdayBOGOs"] = Document{
			"price":    decimal.Zero,
			"quantity": num(bp["quantity"]),
			"total":    decimal.Zero,
		}
	}
	delete(out, "birthday")
	return out
}

func upgradeFinancial(doc Document) Document {
	fin := getMap(doc, "financial")
	moneyCount := getMap(doc, "moneyCount")
	bingoDrawer := getMap(moneyCount, "bingo")
	pullTabDrawer := getMap(moneyCount, "pullTab")

	var regSales, spcSales, regPrizes, spcPrizes, ptChecks decimal.Decimal
	for _, v := range orEmptySlice(doc["pullTabs"]) {
		pt, ok := v.(Document)
		if !ok {
			continue
		}
		sales := num(pt["sales"])
		prizes := num(pt["prizesPaid"])
		if truthy(pt["isSpecialEvent"]) {
			spcSales = spcSales.Add(sales)
			spcPrizes = spcPrizes.Add(prizes)
		} else {
			regSales = regSales.Add(sales)
			regPrizes = regPrizes.Add(prizes)
		}
		if truthy(pt["checkPayment"]) {
			ptChecks = ptChecks.Add(prizes)
		}
	}

	// The old converter hardcoded check prizes to zero; recompute them from
	// the games array when one is present, excluding the event game whose
	// payout belongs to pull-tabs.
	var gameChecks decimal.Decimal
	for _, v := range orEmptySlice(doc["games"]) {
		g, ok := v.(Document)
		if !ok || !truthy(g["checkPayment"]) || isEventGameName(g["name"]) {
			continue
		}
		gameChecks = gameChecks.Add(num(g["totalPayout"]))
	}

	bingoDeposit := depositTotal(bingoDrawer)
	pullTabDeposit := depositTotal(pullTabDrawer)

	bingoSales := num(fin["totalBingoSales"])
	if bingoSales.IsZero() {
		bingoSales = num(fin["bingoSales"])
	}
	bingoPrizesPaid := num(fin["bingoPrizesPaid"])
	bingoNetProfit := bingoSales.Sub(bingoPrizesPaid)
	startupCash := decimal.NewFromInt(1000)
	bingoNetDeposit := bingoDeposit.Sub(startupCash)
	bingoOverShort := bingoNetDeposit.Sub(bingoNetProfit)

	pullTabSales := regSales.Add(spcSales)
	pullTabPrizes := regPrizes.Add(spcPrizes)
	pullTabNetProfit := pullTabSales.Sub(pullTabPrizes)
	pullTabOverShort := pullTabDeposit.Sub(pullTabNetProfit)

	totalSales := bingoSales.Add(pullTabSales)
	totalPrizesPaid := bingoPrizesPaid.Add(pullTabPrizes)
	totalNetProfit := totalSales.Sub(totalPrizesPaid)

	return Document{
		"bingoElectronicSales":    num(fin["totalElectronicSales"]),
		"bingoMiscellaneousSales": num(fin["totalMiscellaneousSales"]),
		"bingoPaperSales":         num(fin["totalPaperSales"]),
		"bingoSales":              bingoSales,
		"bingoPrizesPaid":         bingoPrizesPaid,
		"bingoNetProfit":          bingoNetProfit,
		"bingoDeposit":            bingoDeposit,
		"bingoStartupCash":        startupCash,
		"bingoNetDeposit":         bingoNetDeposit,
		"bingoOverShort":          bingoOverShort,

		"pullTabRegularSales":      regSales,
		"pullTabSpecialSales":      spcSales,
		"pullTabSales":             pullTabSales,
		"pullTabRegularPrizesPaid": regPrizes,
		"pullTabSpecialPrizesPaid": spcPrizes,
		"pullTabPrizes":            pullTabPrizes,
		"pullTabPrizesPaidByCheck": ptChecks,
		"pulltabNetProfit":         pullTabNetProfit,
		"pullTabNetDeposit":        pullTabDeposit,
		"pullTabOverShort":         pullTabOverShort,

		"totalSales":             totalSales,
		"totalPrizesPaid":        totalPrizesPaid,
		"totalPrizesPaidByCheck": gameChecks.Add(ptChecks),
		"totalNetProfit":         totalNetProfit,
		"totalCurrencyDeposit":   currencyTotal(bingoDrawer).Add(currencyTotal(pullTabDrawer)),
		"totalCoinDeposit":       num(bingoDrawer["coins"]).Add(num(pullTabDrawer["coins"])),
		"totalCheckDeposit":      num(bingoDrawer["checks"]).Add(num(pullTabDrawer["checks"])),
		"totalActualDeposit":     bingoDeposit.Add(pullTabDeposit),
		"totalNetDeposit":        bingoNetDeposit.Add(pullTabDeposit),
		"totalOverShort":         bingoOverShort.Add(pullTabOverShort),
	}
}

// Downgrade exports a current-schema record in the V1 shape. Lossy: see the
// package comment.
func Downgrade(doc Document) Document {
	if doc == nil {
		return nil
	}
	occ := getMap(doc, "occasion")
	fin := getMap(doc, "financial")

	v1Occ := Document{}
	for k, v := range occ {
		v1Occ[k] = v
	}
	if v, ok := v1Occ["birthdayBOGOs"]; ok {
		v1Occ["birthdays"] = v
	} else if _, ok := v1Occ["birthdays"]; !ok {
		v1Occ["birthdays"] = decimal.Zero
	}
	rootProg := orEmpty(v1Occ["progressive"])
	delete(v1Occ, "progressive")
	delete(v1Occ, "birthdayBOGOs")

	out := Document{
		"occasion":    v1Occ,
		"paperBingo":  doc["paperBingo"],
		"posSales":    doc["posSales"],
		"electronic":  doc["electronic"],
		"games":       doc["games"],
		"pullTabs":    doc["pullTabs"],
		"moneyCount":  doc["moneyCount"],
		"sessionType": occ["sessionType"],
		"progressive": rootProg,
		"financial": Document{
			"totalElectronicSales":    num(fin["bingoElectronicSales"]),
			"totalMiscellaneousSales": num(fin["bingoMiscellaneousSales"]),
			"totalPaperSales":         num(fin["bingoPaperSales"]),
			"totalBingoSales":         num(fin["bingoSales"]),
			"pullTabSales":            num(fin["pullTabSales"]),
			"specialEventSales":       num(fin["pullTabSpecialSales"]),
			"grossSales":              num(fin["totalSales"]),
			"bingoPrizesPaid":         num(fin["bingoPrizesPaid"]),
			"pullTabPrizesPaid":       num(fin["pullTabPrizes"]),
			"specialEventPrizesPaid":  num(fin["pullTabSpecialPrizesPaid"]),
			"totalPrizesPaid":         num(fin["totalPrizesPaid"]),
			"prizesPaidByCheck":       num(fin["totalPrizesPaidByCheck"]),
			"idealProfit":             num(fin["totalNetProfit"]),
			"overShort":               num(fin["totalOverShort"]),
			"totalCashDeposit":        num(fin["totalActualDeposit"]),
			"actualProfit":            num(fin["totalNetDeposit"]),
		},
		"pullTabSales":  num(fin["pullTabSales"]),
		"pullTabPrizes": num(fin["pullTabPrizes"]),
		"pullTabNet":    num(fin["pulltabNetProfit"]),
	}
	for _, k := range []string{"id", "created", "modified"} {
		if v, ok := doc[k]; ok {
			out[k] = v
		}
	}
	return out
}

// ── raw-document helpers ────────────────────────────────────────

func depositTotal(drawer Document) decimal.Decimal {
	return currencyTotal(drawer).Add(num(drawer["coins"])).Add(num(drawer["checks"]))
}

func currencyTotal(drawer Document) decimal.Decimal {
	total := decimal.Zero
	for _, face := range []string{"100", "50", "20", "10", "5", "2", "1"} {
		fv := decimal.RequireFromString(face)
		total = total.Add(fv.Mul(num(drawer[face])))
	}
	return total
}

func isEventGameName(v interface{}) bool {
	name, _ := v.(string)
	lower := strings.ToLower(name)
	return strings.Contains(lower, "pot of gold") ||
		strings.Contains(lower, "pull-tab event") ||
		strings.Contains(lower, "event game")
}

func getMap(doc Document, key string) Document {
	if doc == nil {
		return nil
	}
	m, _ := doc[key].(Document)
	return m
}

func orEmpty(v interface{}) Document {
	if m, ok := v.(Document); ok {
		return m
	}
	return Document{}
}

func orEmptySlice(v interface{}) []interface{} {
	if s, ok := v.([]interface{}); ok {
		return s
	}
	return nil
}

// num converts any JSON-decoded numeric representation to decimal, treating
// malformed or missing values as zero per the engine's lenient policy.
func num(v interface{}) decimal.Decimal {
	switch n := v.(type) {
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case decimal.Decimal:
		return n
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func truthy(v interface{}) bool {
	b, _ := v.(bool)
	return b
}
