package resource

import "github.com/migeprof/fehub/core/location"

// The entity bindings. Each page is the same engine with a different row of
// this configuration; adding an entity means adding a schema, not a page.

func Programs() Schema {
	return Schema{
		Name:     "programs",
		Singular: "program",
		IDField:  "ProgramID",
		Fields: []Field{
			{Name: "ProgramName", Label: "Program Name", Kind: Text, Required: true},
			{Name: "Description", Label: "Description", Kind: LongText, Required: true},
			{Name: "Thumbnail", Label: "Thumbnail", Kind: File, WriteOnly: true},
		},
		Endpoints: Endpoints{
			Collection: "/programs",
			Item:       "/programs/%s",
			Toggle:     "/programs/toggle-status/%s",
		},
	}
}

func FieldAgents() Schema {
	return Schema{
		Name:     "field agents",
		Singular: "field agent",
		IDField:  "UserID",
		Fields: []Field{
			{Name: "Username", Label: "Username", Kind: Text, Required: true},
			{Name: "Email", Label: "Email", Kind: Email, Required: true},
			{Name: "Password", Label: "Password", Kind: Password, Required: true, WriteOnly: true},
		},
		Endpoints: Endpoints{
			Collection: "/users",
			Create:     "/users/create-field-agent",
			Item:       "/users/%s",
			Toggle:     "/users/%s/toggle-activation",
		},
	}
}

func Families() Schema {
	return Schema{
		Name:     "families",
		Singular: "family",
		IDField:  "FamilyID",
		Fields: []Field{
			{Name: "FamilyHeadName", Label: "Family Head Name", Kind: Text, Required: true},
			{Name: "Address", Label: "Address", Kind: Text, Required: true},
			{Name: "Status", Label: "Status", Kind: Select, Required: true, Options: []string{"Active", "Inactive", "Relocated"}},
			{Name: "NumberOfMembers", Label: "Number of Members", Kind: Number, Required: true},
			{Name: "IncomeLevel", Label: "Income Level", Kind: Select, Required: true, Options: []string{"Low", "Middle", "High"}},
			{Name: "EducationLevel", Label: "Education Level", Kind: Select, Required: true, Options: []string{"None", "Primary", "Secondary", "Tertiary"}},
			{Name: "Province", Label: "Province", Kind: Select, Required: true},
			{Name: "District", Label: "District", Kind: Select, Required: true},
			{Name: "Sector", Label: "Sector", Kind: Select, Required: true},
			{Name: "Cell", Label: "Cell", Kind: Select, Required: true},
			{Name: "Village", Label: "Village", Kind: Select, Required: true},
		},
		Endpoints: Endpoints{
			Collection: "/families",
			Create:     "/families/register",
			Item:       "/families/%s",
			Update:     "/families/update/%s",
			Delete:     "/families/delete/%s",
		},
		Check: checkFamilyLocation,
	}
}

// checkFamilyLocation enforces the administrative hierarchy: a level is only
// valid under the exact chain of parents submitted with it, and the chain
// must resolve all the way down.
func checkFamilyLocation(vals Values) []FieldCheckError {
	sel := location.NewSelection(vals["Province"], vals["District"], vals["Sector"], vals["Cell"], vals["Village"])

	var errs []FieldCheckError
	for _, level := range []location.Level{
		location.LevelProvince, location.LevelDistrict, location.LevelSector, location.LevelCell, location.LevelVillage,
	} {
		submitted := vals[level.String()]
		if submitted != "" && sel.Value(level) != submitted {
			errs = append(errs, FieldCheckError{Field: level.String(), Error: "invalid selection for this level"})
		}
	}
	return errs
}

func Contents() Schema {
	return Schema{
		Name:     "contents",
		Singular: "content",
		IDField:  "ContentID",
		Fields: []Field{
			{Name: "Title", Label: "Title", Kind: Text, Required: true},
			{Name: "Description", Label: "Description", Kind: LongText, Required: true},
			{Name: "ProgramID", Label: "Program", Kind: Select, Required: true},
			{Name: "video", Label: "Video", Kind: File, Required: true, WriteOnly: true},
		},
		Endpoints: Endpoints{
			Collection: "/contents",
			Item:       "/contents/%s",
			Multipart:  true,
		},
	}
}

func Attendances() Schema {
	return Schema{
		Name:     "attendances",
		Singular: "attendance",
		IDField:  "AttendanceID",
		Fields: []Field{
			{Name: "ProgramID", Label: "Program", Kind: Select, Required: true},
			{Name: "FamilyID", Label: "Family", Kind: Select, Required: true},
			{Name: "Status", Label: "Status", Kind: Select, Required: true, Options: []string{"Present", "Absent"}},
		},
		Endpoints: Endpoints{
			Collection: "/attendances",
			Upsert:     true,
		},
	}
}

func SessionFeedbacks() Schema {
	return Schema{
		Name:     "feedback",
		Singular: "feedback",
		IDField:  "FeedbackID",
		Fields: []Field{
			{Name: "fullName", Label: "Full Name", Kind: Text, Required: true},
			{Name: "email", Label: "Email", Kind: Email, Required: true},
			{Name: "serviceName", Label: "Service Name", Kind: Text, Required: true},
			{Name: "programId", Label: "Program", Kind: Select, Required: true},
			{Name: "sessionDate", Label: "Session Date", Kind: Date, Required: true},
			{Name: "constructiveFeedback", Label: "Constructive Feedback", Kind: LongText, Required: true},
			{Name: "uncertainties", Label: "Uncertainties", Kind: LongText},
			{Name: "recommend", Label: "Would Recommend", Kind: Bool},
			{Name: "additionalComments", Label: "Additional Comments", Kind: LongText},
			{Name: "rating", Label: "Rating", Kind: Rating, Required: true, Max: 5},
			{Name: "attendanceCount", Label: "Attendance Count", Kind: Number},
		},
		Endpoints: Endpoints{
			Collection: "/feedback",
		},
	}
}

func ContentRatings() Schema {
	return Schema{
		Name:     "content ratings",
		Singular: "content rating",
		IDField:  "ContentID",
		Fields: []Field{
			{Name: "ContentID", Label: "Content", Kind: Select, Required: true},
			{Name: "FamilyID", Label: "Family", Kind: Select, Required: true},
			{Name: "Rating", Label: "Rating", Kind: Rating, Required: true, Max: 10},
		},
		Endpoints: Endpoints{
			Collection: "/feedback/ids",
			Create:     "/feedback/submit",
		},
	}
}
