package tariff

import (
	"strings"

	"github.com/flowers-delivery/internal/normalizer"
)

// IssueKind classifies a rejected source row.
type IssueKind string

const (
	IssueEmptyRow  IssueKind = "empty_row"
	IssueNoAliases IssueKind = "no_aliases"
	IssueBadCost   IssueKind = "bad_cost"
)

// RowIssue describes why a source row was skipped. Row is the 1-based line
// number in the source, the header being line 1.
type RowIssue struct {
	Row     int       `json:"row"`
	Kind    IssueKind `json:"kind"`
	Value   string    `json:"value,omitempty"`
	Message string    `json:"message"`
}

// parseRows turns data rows into entries using the parser of the detected
// schema. Rejected rows are reported and never affect their siblings.
func parseRows(schema Schema, cols columns, rows [][]string) ([]Entry, []RowIssue) {
	var (
		entries []Entry
		issues  []RowIssue
	)

	for i, row := range rows {
		line := i + 2

		var (
			entry Entry
			issue *RowIssue
		)
		switch schema {
		case SchemaFlat:
			entry, issue = parseFlatRow(cols, row, line)
		case SchemaAdministrative:
			entry, issue = parseAdministrativeRow(cols, row, line)
		default:
			return nil, nil
		}

		if issue != nil {
			issues = append(issues, *issue)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, issues
}

func parseFlatRow(cols columns, row []string, line int) (Entry, *RowIssue) {
	aliasesRaw := cell(row, cols.aliases)
	costRaw := cell(row, cols.cost)
	label := cell(row, cols.label)
	if label == "" {
		label = aliasesRaw
	}

	if aliasesRaw == "" || costRaw == "" {
		return Entry{}, &RowIssue{Row: line, Kind: IssueEmptyRow, Message: "aliases or cost is empty"}
	}

	aliases := make([]string, 0, strings.Count(aliasesRaw, "|")+1)
	for _, part := range strings.Split(aliasesRaw, "|") {
		aliases = append(aliases, normalizer.Normalize(part))
	}
	aliases = normalizer.OrderLongestFirst(aliases)
	if len(aliases) == 0 {
		return Entry{}, &RowIssue{Row: line, Kind: IssueNoAliases, Value: aliasesRaw, Message: "no usable aliases"}
	}

	cost, err := ParseFlatCost(costRaw)
	if err != nil {
		return Entry{}, &RowIssue{Row: line, Kind: IssueBadCost, Value: costRaw, Message: err.Error()}
	}

	return Entry{Aliases: aliases, Cost: Priced(cost), Label: label}, nil
}

func parseAdministrativeRow(cols columns, row []string, line int) (Entry, *RowIssue) {
	settlement := cell(row, cols.settlement)
	if settlement == "" {
		return Entry{}, &RowIssue{Row: line, Kind: IssueEmptyRow, Message: "settlement is empty"}
	}

	aliases := normalizer.BuildAliases(settlement)
	if len(aliases) == 0 {
		return Entry{}, &RowIssue{Row: line, Kind: IssueNoAliases, Value: settlement, Message: "no usable aliases"}
	}

	return Entry{
		Aliases: aliases,
		Cost:    ParseFreeTextCost(cell(row, cols.cost)),
		Label:   settlement,
	}, nil
}
