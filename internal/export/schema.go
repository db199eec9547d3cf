package export

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

// imageJoinSeparator joins a card's image URLs into the single picture
// field. Distinct from the comma field separator on purpose.
const imageJoinSeparator = "|"

// rawColumns is the internal dump schema: every persisted field as-is,
// no leading info row. Column order is fixed.
var rawColumns = []string{
	"id",
	"lot_id",
	"sort_order",
	"title",
	"price",
	"category",
	"year",
	"brand",
	"set_name",
	"name",
	"card_number",
	"subset_parallel",
	"attributes",
	"team",
	"variation",
	"graded",
	"grader",
	"grade",
	"cert_no",
}

// schemaColumns holds the exact, versioned column order of the bulk-upload
// format. The header list is configuration data; adding a revision means
// adding an entry here and resolvers for any new columns, never forking
// the row builder.
var schemaColumns = map[enums.SchemaVersion][]string{
	enums.SchemaVersion2023_1: {
		"*Action(SiteID=US|Country=US|Currency=USD|Version=1193)",
		"CustomLabel",
		"*Category",
		"StoreCategory",
		"*Title",
		"Description",
		"PicURL",
		"*ConditionID",
		"*Format",
		"*Duration",
		"*StartPrice",
		"BuyItNowPrice",
		"*Quantity",
		"ImmediatePayRequired",
		"*Location",
		"ShippingType",
		"ShippingService-1:Option",
		"ShippingService-1:Cost",
		"ShippingService-1:AdditionalCost",
		"*DispatchTimeMax",
		"*ReturnsAcceptedOption",
		"ReturnsWithinOption",
		"RefundOption",
		"ShippingCostPaidByOption",
		"ScheduleTime",
		"C:Sport",
		"C:Player/Athlete",
		"C:Year Manufactured",
		"C:Manufacturer",
		"C:Set",
		"C:Card Number",
	},
	enums.SchemaVersion2024_2: {
		"*Action(SiteID=US|Country=US|Currency=USD|Version=1193)",
		"CustomLabel",
		"*Category",
		"StoreCategory",
		"*Title",
		"Subtitle",
		"Description",
		"PicURL",
		"GalleryType",
		"*ConditionID",
		"CD:Professional Grader - (ID: 27501)",
		"CD:Grade - (ID: 27502)",
		"CD:Certification Number - (ID: 27503)",
		"CD:Card Condition - (ID: 40001)",
		"*Format",
		"*Duration",
		"*StartPrice",
		"BuyItNowPrice",
		"*Quantity",
		"ImmediatePayRequired",
		"*Location",
		"ShippingType",
		"ShippingService-1:Option",
		"ShippingService-1:Cost",
		"ShippingService-1:AdditionalCost",
		"ShippingService-1:FreeShipping",
		"*DispatchTimeMax",
		"*ReturnsAcceptedOption",
		"ReturnsWithinOption",
		"RefundOption",
		"ShippingCostPaidByOption",
		"ScheduleTime",
		"C:Sport",
		"C:Player/Athlete",
		"C:Year Manufactured",
		"C:Manufacturer",
		"C:Set",
		"C:Card Number",
		"C:Parallel/Variety",
		"C:Features",
		"C:Team",
		"C:Graded",
	},
}

// SchemaHeader returns the column order for a bulk-upload schema version.
func SchemaHeader(version enums.SchemaVersion) ([]string, error) {
	columns, ok := schemaColumns[version]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown schema version %q", version))
	}
	return columns, nil
}

func infoRow(version enums.SchemaVersion, width int) []string {
	row := make([]string, width)
	row[0] = "#INFO"
	if width > 1 {
		row[1] = "Version=" + version.String()
	}
	if width > 2 {
		row[2] = "Template=ebay-bulk-upload"
	}
	return row
}

// rowContext carries everything a single card row needs: the card, its
// resolved condition branch, the profile, and request-scoped options.
type rowContext struct {
	card      models.Card
	profile   models.ExportProfile
	condition ResolvedCondition
	schedule  string
	baseURL   string
}

// columnResolvers maps each bulk-upload column to its value. One table
// serves every schema version; the version only picks which columns run.
var columnResolvers = map[string]func(rowContext) string{
	"*Action(SiteID=US|Country=US|Currency=USD|Version=1193)": func(rowContext) string { return "Add" },
	"CustomLabel":   func(rc rowContext) string { return rc.card.ID.String() },
	"*Category":     func(rc rowContext) string { return rc.profile.CategoryID },
	"StoreCategory": func(rc rowContext) string { return rc.profile.StoreCategoryID },
	"*Title":        func(rc rowContext) string { return TruncateTitle(GenerateTitle(rc.card)) },
	"Subtitle":      func(rowContext) string { return "" },
	"Description":   func(rc rowContext) string { return rc.card.Description },
	"PicURL":        func(rc rowContext) string { return joinImageURLs(rc.card.Images, rc.baseURL) },
	"GalleryType":   func(rowContext) string { return "Gallery" },
	"*ConditionID":  func(rc rowContext) string { return rc.condition.ConditionID },
	"CD:Professional Grader - (ID: 27501)":  func(rc rowContext) string { return rc.condition.Grader },
	"CD:Grade - (ID: 27502)":                func(rc rowContext) string { return rc.condition.Grade },
	"CD:Certification Number - (ID: 27503)": func(rc rowContext) string { return rc.condition.CertNo },
	"CD:Card Condition - (ID: 40001)":       func(rc rowContext) string { return rc.condition.CardConditionCode },
	"*Format":   func(rc rowContext) string { return rc.profile.ListingType.String() },
	"*Duration": func(rc rowContext) string { return "Days_" + strconv.Itoa(rc.profile.DurationDays) },
	"*StartPrice": func(rc rowContext) string {
		if rc.card.Price.IsPositive() {
			return rc.card.Price.StringFixed(2)
		}
		return rc.profile.StartPrice.StringFixed(2)
	},
	"BuyItNowPrice": func(rowContext) string { return "" },
	"*Quantity":     func(rowContext) string { return "1" },
	"ImmediatePayRequired": func(rc rowContext) string {
		return boolFlag(rc.profile.ImmediatePay)
	},
	"*Location":    func(rc rowContext) string { return rc.profile.ItemLocation },
	"ShippingType": func(rowContext) string { return "Flat" },
	"ShippingService-1:Option": func(rc rowContext) string {
		return rc.profile.ShippingService
	},
	"ShippingService-1:Cost": func(rc rowContext) string {
		if rc.profile.FreeShipping {
			return "0.00"
		}
		return rc.profile.ShippingCost.StringFixed(2)
	},
	"ShippingService-1:AdditionalCost": func(rc rowContext) string {
		if rc.profile.FreeShipping {
			return "0.00"
		}
		return rc.profile.AdditionalItemCost.StringFixed(2)
	},
	"ShippingService-1:FreeShipping": func(rc rowContext) string {
		return boolFlag(rc.profile.FreeShipping)
	},
	"*DispatchTimeMax": func(rc rowContext) string { return strconv.Itoa(rc.profile.HandlingDays) },
	"*ReturnsAcceptedOption": func(rc rowContext) string {
		if rc.profile.ReturnsAccepted {
			return "ReturnsAccepted"
		}
		return "ReturnsNotAccepted"
	},
	"ReturnsWithinOption": func(rc rowContext) string {
		if !rc.profile.ReturnsAccepted {
			return ""
		}
		return "Days_" + strconv.Itoa(rc.profile.ReturnsWithinDays)
	},
	"RefundOption": func(rc rowContext) string {
		if !rc.profile.ReturnsAccepted {
			return ""
		}
		return strings.ReplaceAll(rc.profile.RefundMethod, " ", "")
	},
	"ShippingCostPaidByOption": func(rc rowContext) string {
		if !rc.profile.ReturnsAccepted {
			return ""
		}
		return rc.profile.ReturnShippingPaid
	},
	"ScheduleTime":        func(rc rowContext) string { return rc.schedule },
	"C:Sport":             func(rc rowContext) string { return rc.card.Category },
	"C:Player/Athlete":    func(rc rowContext) string { return rc.card.Name },
	"C:Year Manufactured": func(rc rowContext) string { return rc.card.Year },
	"C:Manufacturer":      func(rc rowContext) string { return rc.card.Brand },
	"C:Set":               func(rc rowContext) string { return rc.card.SetName },
	"C:Card Number":       func(rc rowContext) string { return rc.card.CardNumber },
	"C:Parallel/Variety":  func(rc rowContext) string { return rc.card.SubsetParallel },
	"C:Features":          func(rc rowContext) string { return strings.Join(rc.card.Attributes, imageJoinSeparator) },
	"C:Team":              func(rc rowContext) string { return rc.card.Team },
	"C:Graded": func(rc rowContext) string {
		if rc.card.ConditionType == enums.ConditionTypeGraded {
			return "Yes"
		}
		return "No"
	},
}

// buildEbayRow produces one data row in the given version's column order.
// A column without a resolver aborts the export rather than emitting a
// misaligned row.
func buildEbayRow(version enums.SchemaVersion, rc rowContext) ([]string, error) {
	columns, err := SchemaHeader(version)
	if err != nil {
		return nil, err
	}
	row := make([]string, len(columns))
	for i, column := range columns {
		resolve, ok := columnResolvers[column]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeSerialization,
				fmt.Sprintf("no resolver for column %q", column))
		}
		row[i] = resolve(rc)
	}
	return row, nil
}

// buildRawRow preserves the record's native representations, including the
// deprecated legacy graded flag.
func buildRawRow(card models.Card) []string {
	return []string{
		card.ID.String(),
		card.LotID.String(),
		strconv.Itoa(card.SortOrder),
		card.Title,
		card.Price.String(),
		card.Category,
		card.Year,
		card.Brand,
		card.SetName,
		card.Name,
		card.CardNumber,
		card.SubsetParallel,
		strings.Join(card.Attributes, imageJoinSeparator),
		card.Team,
		card.Variation,
		strconv.FormatBool(card.Graded),
		card.Grader,
		card.Grade,
		card.CertNo,
	}
}

// joinImageURLs joins the card's images, in position order, into one
// field. With a base URL each storage key becomes an absolute,
// percent-encoded URL; without one the raw key passes through and the
// file is not yet channel-usable, which is a documented limitation.
func joinImageURLs(images []models.CardImage, baseURL string) string {
	parts := make([]string, 0, len(images))
	for _, image := range images {
		parts = append(parts, imageURL(image.OriginalKey, baseURL))
	}
	return strings.Join(parts, imageJoinSeparator)
}

func imageURL(storageKey, baseURL string) string {
	if baseURL == "" {
		return storageKey
	}
	escaped := (&url.URL{Path: "/" + strings.TrimPrefix(storageKey, "/")}).EscapedPath()
	return strings.TrimSuffix(baseURL, "/") + escaped
}

func boolFlag(value bool) string {
	if value {
		return "1"
	}
	return "0"
}
