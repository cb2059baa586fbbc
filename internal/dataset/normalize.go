// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package dataset

import (
	"sort"
	"strconv"
	"strings"
)

// Rank snapshot column names.
const (
	ColRound       = "Round"
	ColInstitute   = "Institute"
	ColProgram     = "Program"
	ColStream      = "Stream"
	ColSeatType    = "Seat Type"
	ColQuota       = "Quota"
	ColCategory    = "Category"
	ColOpeningRank = "Opening Rank"
	ColClosingRank = "Closing Rank"
	ColDistrict    = "District"
)

// College reference column names.
const (
	ColLocation     = "Location"
	ColWebsite      = "Website"
	ColLogoImageURL = "logo_image_url"
	ColLogoImage    = "logo_image"
	ColPicture      = "Picture"
)

const rankFilePrefix = "rank_"

// YearFromName extracts the year from a snapshot name such as "rank_2024".
// It returns 0 when the name carries no numeric year.
func YearFromName(name string) int {
	rest, ok := strings.CutPrefix(name, rankFilePrefix)
	if !ok {
		return 0
	}
	if i := strings.IndexByte(rest, '_'); i >= 0 {
		rest = rest[:i]
	}
	year, err := strconv.Atoi(rest)
	if err != nil {
		return 0
	}
	return year
}

// Normalize reconciles the loaded rank snapshots into a single Corpus and
// joins district data from the college table. A nil college table leaves
// every District empty.
func Normalize(tables *Tables) *Corpus {
	corpus := &Corpus{Profiles: map[string]InstituteProfile{}}
	if tables == nil {
		return corpus
	}

	if tables.College != nil {
		corpus.Profiles = BuildProfiles(tables.College)
		corpus.HasDistricts = true
	}

	years := map[int]struct{}{}
	for _, t := range tables.Ranks {
		year := YearFromName(t.Name)
		hasSeatType := t.Has(ColSeatType)

		for i := range t.Rows {
			rec := RankRecord{
				Year:        year,
				Round:       parseRound(t.Get(i, ColRound)),
				Institute:   CleanKey(t.Get(i, ColInstitute)),
				Program:     CleanKey(t.Get(i, ColProgram)),
				Stream:      CleanKey(CanonicalizeStream(t.Get(i, ColStream))),
				Quota:       CleanKey(t.Get(i, ColQuota)),
				Category:    CleanKey(t.Get(i, ColCategory)),
				OpeningRank: ParseFloat(t.Get(i, ColOpeningRank)),
				ClosingRank: ParseFloat(t.Get(i, ColClosingRank)),
			}
			if hasSeatType {
				rec.SeatType = CleanKey(t.Get(i, ColSeatType))
			} else {
				rec.SeatType = CleanKey(DefaultSeatType)
			}
			if p, ok := corpus.Profiles[rec.Institute]; ok {
				rec.District = p.District
			}
			corpus.Records = append(corpus.Records, rec)
		}
		if t.Len() > 0 {
			years[year] = struct{}{}
		}
	}

	for y := range years {
		corpus.Years = append(corpus.Years, y)
	}
	sort.Ints(corpus.Years)

	return corpus
}

// BuildProfiles indexes the college table by normalized institute name.
// When an institute appears more than once the first row wins, so the join
// never multiplies rank rows.
func BuildProfiles(college *Table) map[string]InstituteProfile {
	college.Rename(map[string]string{ColLogoImageURL: ColLogoImage})

	profiles := make(map[string]InstituteProfile, college.Len())
	for i := range college.Rows {
		name := CleanKey(college.Get(i, ColInstitute))
		if name == "" {
			continue
		}
		if _, seen := profiles[name]; seen {
			continue
		}
		profiles[name] = InstituteProfile{
			Institute: name,
			District:  CleanKey(college.Get(i, ColDistrict)),
			Location:  CleanDisplay(college.Get(i, ColLocation)),
			Website:   CleanDisplay(college.Get(i, ColWebsite)),
			LogoImage: CleanDisplay(college.Get(i, ColLogoImage)),
			Picture:   CleanDisplay(college.Get(i, ColPicture)),
		}
	}
	return profiles
}
