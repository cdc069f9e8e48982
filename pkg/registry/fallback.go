package registry

import "github.com/atilladeniz/twenty-crm-mcp-server/pkg/schema"

// coreObjectNames are compiled on every rebuild in addition to whatever the
// metadata export declares, so the canonical CRM objects stay addressable.
var coreObjectNames = []string{
	"people", "companies", "opportunities", "notes", "tasks", "noteTargets",
}

func stringProp(description string) map[string]any {
	p := map[string]any{"type": "string"}
	if description != "" {
		p["description"] = description
	}
	return p
}

// fallbackContracts is the minimal hardcoded contract set used wholesale
// when schema metadata cannot be loaded or compiles to nothing. Property
// maps are deliberately small: just enough to keep basic operations
// callable. The noteTargets join object is the exception: it carries full
// relation metadata by hand because minimal exports give it no schema
// source of its own.
func fallbackContracts() []*schema.ObjectContract {
	return []*schema.ObjectContract{
		{
			NameSingular: "person", NamePlural: "people",
			LabelSingular: "Person", LabelPlural: "People",
			Properties: map[string]any{
				"name": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"firstName": map[string]any{"type": "string"},
						"lastName":  map[string]any{"type": "string"},
					},
				},
				"emails":    schema.StructuralType(schema.KindEmails),
				"phones":    schema.StructuralType(schema.KindPhones),
				"jobTitle":  stringProp(""),
				"city":      stringProp(""),
				"companyId": stringProp("company record id"),
			},
			Relations: []schema.Relation{
				{FieldName: "company", TargetObject: "company", Cardinality: schema.CardinalitySingle, Alias: "companyId"},
			},
			Kinds: map[string]schema.FieldKind{
				"name": schema.KindFullName, "emails": schema.KindEmails,
				"phones": schema.KindPhones, "jobTitle": schema.KindText,
				"city": schema.KindText, "company": schema.KindRelation,
			},
		},
		{
			NameSingular: "company", NamePlural: "companies",
			LabelSingular: "Company", LabelPlural: "Companies",
			Properties: map[string]any{
				"name":       stringProp("Company name"),
				"domainName": schema.StructuralType(schema.KindLinks),
				"employees":  map[string]any{"type": "number"},
				"address":    schema.StructuralType(schema.KindAddress),
			},
			Required: []string{"name"},
			Kinds: map[string]schema.FieldKind{
				"name": schema.KindText, "domainName": schema.KindLinks,
				"employees": schema.KindNumber, "address": schema.KindAddress,
			},
		},
		{
			NameSingular: "opportunity", NamePlural: "opportunities",
			LabelSingular: "Opportunity", LabelPlural: "Opportunities",
			Properties: map[string]any{
				"name":      stringProp("Opportunity name"),
				"amount":    schema.StructuralType(schema.KindCurrency),
				"stage":     stringProp(""),
				"closeDate": stringProp("Expected close date"),
				"companyId": stringProp("company record id"),
			},
			Required: []string{"name"},
			Relations: []schema.Relation{
				{FieldName: "company", TargetObject: "company", Cardinality: schema.CardinalitySingle, Alias: "companyId"},
			},
			Kinds: map[string]schema.FieldKind{
				"name": schema.KindText, "amount": schema.KindCurrency,
				"stage": schema.KindSelect, "closeDate": schema.KindDateTime,
				"company": schema.KindRelation,
			},
		},
		{
			NameSingular: "note", NamePlural: "notes",
			LabelSingular: "Note", LabelPlural: "Notes",
			Properties: map[string]any{
				"title":    stringProp("Note title"),
				"bodyV2":   map[string]any{"type": "object"},
				"body":     stringProp("Note body"),
				"position": map[string]any{"type": "number"},
			},
			Required: []string{"title"},
			Kinds: map[string]schema.FieldKind{
				"title": schema.KindText, "bodyV2": schema.KindRichText,
				"body": schema.KindRichText, "position": schema.KindPosition,
			},
		},
		{
			NameSingular: "task", NamePlural: "tasks",
			LabelSingular: "Task", LabelPlural: "Tasks",
			Properties: map[string]any{
				"title":   stringProp("Task title"),
				"body":    stringProp("Task body"),
				"dueAt":   stringProp("Due date"),
				"status":  stringProp(""),
				"assigneeId": stringProp("workspaceMember record id"),
			},
			Required: []string{"title"},
			Relations: []schema.Relation{
				{FieldName: "assignee", TargetObject: "workspaceMember", Cardinality: schema.CardinalitySingle, Alias: "assigneeId"},
			},
			Kinds: map[string]schema.FieldKind{
				"title": schema.KindText, "body": schema.KindText,
				"dueAt": schema.KindDateTime, "status": schema.KindSelect,
				"assignee": schema.KindRelation,
			},
		},
		noteTargetFallback(),
	}
}

// noteTargetFallback hand-authors the note-linking join object with its
// three SINGLE relations.
func noteTargetFallback() *schema.ObjectContract {
	return &schema.ObjectContract{
		NameSingular: "noteTarget", NamePlural: "noteTargets",
		LabelSingular: "Note Target", LabelPlural: "Note Targets",
		Properties: map[string]any{
			"noteId":    stringProp("note record id"),
			"personId":  stringProp("person record id"),
			"companyId": stringProp("company record id"),
		},
		Relations: []schema.Relation{
			{FieldName: "note", TargetObject: "note", Cardinality: schema.CardinalitySingle, Alias: "noteId"},
			{FieldName: "person", TargetObject: "person", Cardinality: schema.CardinalitySingle, Alias: "personId"},
			{FieldName: "company", TargetObject: "company", Cardinality: schema.CardinalitySingle, Alias: "companyId"},
		},
		Kinds: map[string]schema.FieldKind{
			"note": schema.KindRelation, "person": schema.KindRelation, "company": schema.KindRelation,
		},
	}
}
