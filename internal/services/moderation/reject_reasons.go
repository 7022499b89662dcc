package moderation

import (
	"sort"
	"strings"
)

type RejectReasonItem struct {
	ReasonCode string
	Label      string
	Detail     string
}

type rejectReasonTemplate struct {
	Label  string
	Detail string
}

var rejectReasonTemplates = map[string]rejectReasonTemplate{
	"PROHIBITED_ITEM": {
		Label:  "Prohibited item",
		Detail: "The listed item is not allowed on the marketplace.",
	},
	"DUPLICATE_AD": {
		Label:  "Duplicate ad",
		Detail: "The same item is already listed in another ad.",
	},
	"MISLEADING_INFO": {
		Label:  "Misleading information",
		Detail: "Title, description or price does not match the item.",
	},
	"WRONG_CATEGORY": {
		Label:  "Wrong category",
		Detail: "The ad is posted under an unrelated category.",
	},
	"POOR_IMAGES": {
		Label:  "Poor images",
		Detail: "Images are missing, stolen or do not show the actual item.",
	},
	"CONTACT_IN_CONTENT": {
		Label:  "Contact details in content",
		Detail: "Phone numbers or links placed inside the title, description or images.",
	},
	"UNREALISTIC_PRICE": {
		Label:  "Unrealistic price",
		Detail: "Price is implausible for the listed item.",
	},
	"COUNTERFEIT": {
		Label:  "Counterfeit product",
		Detail: "The item appears to be a counterfeit or replica sold as genuine.",
	},
	"SPAM": {
		Label:  "Spam",
		Detail: "Repetitive, promotional or irrelevant posting.",
	},
	"OTHER": {
		Label:  "Other",
		Detail: "See the reviewer message for details.",
	},
}

func IsAllowedRejectReason(code string) bool {
	_, ok := rejectReasonTemplates[strings.TrimSpace(code)]
	return ok
}

func ListRejectReasons() []RejectReasonItem {
	codes := make([]string, 0, len(rejectReasonTemplates))
	for code := range rejectReasonTemplates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	items := make([]RejectReasonItem, 0, len(codes))
	for _, code := range codes {
		template := rejectReasonTemplates[code]
		items = append(items, RejectReasonItem{
			ReasonCode: code,
			Label:      template.Label,
			Detail:     template.Detail,
		})
	}

	return items
}
