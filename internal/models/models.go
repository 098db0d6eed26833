package models

import "time"

// Pagination is the shared envelope the newer upstream endpoints return.
type Pagination struct {
	Total int `json:"total"`
	Start int `json:"start"`
	Limit int `json:"limit"`
}

// Client is a Fexa client organization. Names live on the default
// addresses, not on the record itself.
type Client struct {
	ID                    int            `json:"id"`
	Active                bool           `json:"active"`
	IvrID                 string         `json:"ivr_id"`
	EntityID              int            `json:"entity_id"`
	DefaultGeneralAddress *Address       `json:"default_general_address"`
	DefaultBillingAddress *Address       `json:"default_billing_address"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	CustomFieldValues     map[string]any `json:"custom_field_values"`
}

// Address carries the company/DBA naming used to label clients.
type Address struct {
	ID      int    `json:"id"`
	Company string `json:"company"`
	Dba     string `json:"dba"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// ClientInfo is the simplified, cacheable projection of a Client.
type ClientInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Dba    string `json:"dba,omitempty"`
	Active bool   `json:"active"`
	IvrID  string `json:"ivr_id,omitempty"`
}

// ClientsResponse is the list envelope; paging fields are flat here rather
// than nested under "pagination".
type ClientsResponse struct {
	Clients []Client `json:"clients"`
	Total   int      `json:"total"`
	Start   int      `json:"start"`
	Limit   int      `json:"limit"`
}

// ClientResponse is the single-item envelope.
type ClientResponse struct {
	Client *Client `json:"client"`
}

// Vendor is a Fexa subcontractor. The upstream keys both list and single
// lookups under "subcontractors"; single lookups are array-wrapped.
type Vendor struct {
	ID                    int            `json:"id"`
	Active                bool           `json:"active"`
	EntityID              int            `json:"entity_id"`
	DefaultGeneralAddress *Address       `json:"default_general_address"`
	Distance              float64        `json:"distance"`
	AssignableType        string         `json:"assignable_type"`
	CustomFieldValues     map[string]any `json:"custom_field_values"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// VendorsResponse is the vendor list envelope.
type VendorsResponse struct {
	Vendors []Vendor `json:"subcontractors"`
	Total   int      `json:"total"`
	Start   int      `json:"start"`
	Limit   int      `json:"limit"`
}

// VendorResponse is the array-wrapped single-vendor envelope.
type VendorResponse struct {
	Vendors []Vendor `json:"subcontractors"`
}

// WorkOrder is a Fexa work order; status lives in object_state.
type WorkOrder struct {
	ID              int          `json:"id"`
	WorkOrderNumber string       `json:"workorder_number"`
	ObjectState     *ObjectState `json:"object_state"`
	PriorityID      int          `json:"priority_id"`
	Description     string       `json:"description"`
	PlacedFor       int          `json:"placed_for"`
	ClientName      string       `json:"client_name"`
	AssignedTo      int          `json:"assigned_to"`
	VendorName      string       `json:"vendor_name"`
	StoreID         int          `json:"store_id"`
	StoreName       string       `json:"store_name"`
	TechnicianID    int          `json:"technician_id"`
	TechnicianName  string       `json:"technician_name"`
	NextVisit       *time.Time   `json:"next_visit"`
	DateCompleted   *time.Time   `json:"date_completed"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	TotalAmount     string       `json:"total_amount"`
}

// ObjectState is the workflow state wrapper on work orders and visits.
type ObjectState struct {
	ID       int         `json:"id"`
	StatusID int         `json:"status_id"`
	Status   *StatusInfo `json:"status"`
}

// StatusInfo names a workflow status.
type StatusInfo struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	WorkflowType *WorkflowType `json:"workflow_type"`
}

// WorkflowType groups statuses by object type.
type WorkflowType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// WorkOrdersResponse is the work order list envelope.
type WorkOrdersResponse struct {
	WorkOrders []WorkOrder `json:"workorders"`
	Pagination *Pagination `json:"pagination"`
}

// SingleWorkOrderResponse is the single-item envelope; the key stays plural.
type SingleWorkOrderResponse struct {
	WorkOrder *WorkOrder `json:"workorders"`
}

// CreateWorkOrderRequest wraps the new work order under "workorders".
type CreateWorkOrderRequest struct {
	WorkOrders WorkOrderData `json:"workorders"`
}

// WorkOrderData is the creatable portion of a work order.
type WorkOrderData struct {
	WorkOrderClassID int        `json:"workorder_class_id"`
	PriorityID       int        `json:"priority_id"`
	CategoryID       int        `json:"category_id"`
	Description      string     `json:"description"`
	FacilityID       int        `json:"facility_id"`
	PlacedBy         int        `json:"placed_by"`
	PlacedFor        int        `json:"placed_for"`
	VendorID         int        `json:"vendor_id,omitempty"`
	SeverityID       int        `json:"severity_id,omitempty"`
	Emergency        bool       `json:"emergency,omitempty"`
	ScheduledFor     *time.Time `json:"scheduled_for,omitempty"`
	ClientNotes      string     `json:"client_notes,omitempty"`
}

// CreateWorkOrderResponse mirrors the upstream creation envelope.
type CreateWorkOrderResponse struct {
	WorkOrders *WorkOrder `json:"workorders"`
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
}

// StatusUpdateProbe is the minimal structural decode of a status-update
// response: enough to tell success from a routing error without trusting
// the rest of the loosely-typed body.
type StatusUpdateProbe struct {
	Success      *bool  `json:"success"`
	RoutingError string `json:"routing_error"`
	Message      string `json:"message"`
}

// StatusUpdateOutcome classifies a status-update attempt.
type StatusUpdateOutcome int

const (
	StatusUpdateUnrecognized StatusUpdateOutcome = iota
	StatusUpdateSuccess
	StatusUpdateRoutingError
)

// Outcome interprets the probe: an explicit success flag wins; a routing
// error marker means the endpoint does not exist; anything else is
// unrecognized and needs verification by re-fetch.
func (p StatusUpdateProbe) Outcome() StatusUpdateOutcome {
	if p.RoutingError != "" {
		return StatusUpdateRoutingError
	}
	if p.Success != nil {
		if *p.Success {
			return StatusUpdateSuccess
		}
		return StatusUpdateRoutingError
	}
	return StatusUpdateUnrecognized
}

// Visit is one technician visit against a work order.
type Visit struct {
	ID            int          `json:"id"`
	AssignmentID  int          `json:"assignment_id"`
	WorkOrderID   int          `json:"workorder_id"`
	CheckInTime   *time.Time   `json:"check_in_time"`
	CheckOutTime  *time.Time   `json:"check_out_time"`
	StartDate     *time.Time   `json:"start_date"`
	EndDate       *time.Time   `json:"end_date"`
	FacilityID    int          `json:"facility_id"`
	CreatedBy     int          `json:"created_by"`
	Scope         string       `json:"scope"`
	WorkPerformed string       `json:"work_performed"`
	Summary       string       `json:"summary"`
	ObjectState   *ObjectState `json:"object_state"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// VisitsResponse is the visit list envelope.
type VisitsResponse struct {
	Visits     []Visit     `json:"visits"`
	Pagination *Pagination `json:"pagination"`
}

// SingleVisitResponse is the single-item envelope.
type SingleVisitResponse struct {
	Visit *Visit `json:"visits"`
}

// Note is a comment attached to a work order or other notable object.
type Note struct {
	ID             int       `json:"id"`
	Note           string    `json:"note"`
	NoteTypeID     int       `json:"note_type_id"`
	CreatedBy      int       `json:"created_by"`
	NotableID      int       `json:"notable_id"`
	NotableType    string    `json:"notable_type"`
	Visibility     string    `json:"visibility"`
	ActionRequired bool      `json:"action_required"`
	IsExternalNote bool      `json:"is_external_note"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NotesResponse is the note list envelope.
type NotesResponse struct {
	Notes      []Note      `json:"notes"`
	Pagination *Pagination `json:"pagination"`
}

// CreateNoteRequest wraps a new note under "notes".
type CreateNoteRequest struct {
	Notes NoteData `json:"notes"`
}

// NoteData is the creatable portion of a note.
type NoteData struct {
	Note        string `json:"note"`
	NotableID   int    `json:"notable_id"`
	NotableType string `json:"notable_type"`
	Visibility  string `json:"visibility,omitempty"`
}

// Region is a geographic grouping of facilities.
type Region struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Active   bool   `json:"active"`
	ParentID int    `json:"parent_id"`
	Level    int    `json:"level"`
	Timezone string `json:"timezone"`
}

// RegionsResponse is the region list envelope.
type RegionsResponse struct {
	Regions    []Region    `json:"regions"`
	Pagination *Pagination `json:"pagination"`
}

// Severity ranks work order urgency.
type Severity struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	Color       string `json:"color"`
}

// SeveritiesResponse is the severity list envelope.
type SeveritiesResponse struct {
	Severities []Severity  `json:"severities"`
	Pagination *Pagination `json:"pagination"`
}

// Priority is a work order priority with SLA hour targets.
type Priority struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Active          bool   `json:"active"`
	Color           string `json:"color"`
	SeverityID      int    `json:"severity_id"`
	SeverityName    string `json:"severity_name"`
	HoursToArrive   string `json:"hours_to_arrive"`
	HoursToComplete string `json:"hours_to_complete"`
	HoursToRespond  string `json:"hours_to_respond"`
}

// PrioritiesResponse is the priority list envelope.
type PrioritiesResponse struct {
	Priorities []Priority `json:"priorities"`
}

// DocumentType labels uploaded documents.
type DocumentType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// DocumentTypesResponse is the document type list envelope.
type DocumentTypesResponse struct {
	DocumentTypes []DocumentType `json:"document_types"`
}

// WorkOrderCategory is a trade/problem category; the display name rides
// under "category".
type WorkOrderCategory struct {
	ID          int    `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	ParentID    int    `json:"parent_id"`
}

// WorkOrderCategoriesResponse is the category list envelope.
type WorkOrderCategoriesResponse struct {
	Categories []WorkOrderCategory `json:"workorder_categories"`
	Pagination *Pagination         `json:"pagination"`
}

// WorkOrderClass groups work orders by billing treatment.
type WorkOrderClass struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// WorkOrderClassesResponse is the class list envelope.
type WorkOrderClassesResponse struct {
	Classes    []WorkOrderClass `json:"workorder_classes"`
	Pagination *Pagination      `json:"pagination"`
}

// WorkflowTransition is one permitted status change.
type WorkflowTransition struct {
	Name               string          `json:"name"`
	FromStatusID       int             `json:"from_status_id"`
	ToStatusID         int             `json:"to_status_id"`
	WorkflowObjectType string          `json:"workflow_object_type"`
	FromStatus         *WorkflowStatus `json:"from_status"`
	ToStatus           *WorkflowStatus `json:"to_status"`
}

// WorkflowStatus names one end of a transition.
type WorkflowStatus struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TransitionsResponse is the transitions list envelope.
type TransitionsResponse struct {
	Transitions []WorkflowTransition `json:"transitions"`
	TotalCount  int                  `json:"total_count"`
	Success     bool                 `json:"success"`
}

// UploadDocumentRequest describes one document upload bound to a work order.
type UploadDocumentRequest struct {
	WorkOrderID    int
	DocumentTypeID int
	Description    string
	FileName       string
	Content        []byte
}

// Document is the upstream record for an uploaded file.
type Document struct {
	ID             int       `json:"id"`
	Description    string    `json:"description"`
	DocumentTypeID int       `json:"document_type_id"`
	FileName       string    `json:"file_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// DocumentResponse is the upload response envelope.
type DocumentResponse struct {
	Documents *Document `json:"documents"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
}

// User is an upstream user account.
type User struct {
	ID        int        `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// UsersResponse is the user list envelope; the list key is singular.
type UsersResponse struct {
	Users      []User      `json:"user"`
	Pagination *Pagination `json:"pagination"`
}

// SingleUserResponse is the single-item envelope.
type SingleUserResponse struct {
	User *User `json:"user"`
}

// Location is a Fexa store/facility record. Both list and single lookups
// come back under the "stores" key.
type Location struct {
	ID                  int           `json:"id"`
	Name                string        `json:"name"`
	Active              bool          `json:"active"`
	Identifier          string        `json:"identifier"`
	FacilityCode        string        `json:"facility_code"`
	OccupiedBy          int           `json:"occupied_by"`
	OwnedBy             int           `json:"owned_by"`
	LocationType        string        `json:"location_type"`
	SqFootage           any           `json:"sq_footage"`
	OpenDate            *time.Time    `json:"open_date"`
	CloseDate           *time.Time    `json:"close_date"`
	StoreAddress        *StoreAddress `json:"store_address"`
	EndUserCustomerRole *OccupantRole `json:"end_user_customer_role"`
	CreatedAt           *time.Time    `json:"created_at"`
	UpdatedAt           *time.Time    `json:"updated_at"`
}

// OccupantRole links a store to the client occupying it.
type OccupantRole struct {
	ID             int      `json:"id"`
	DefaultAddress *Address `json:"default_address"`
}

// StoreAddress is the physical address block on a store. Coordinates ride
// under "lat"/"long" as strings.
type StoreAddress struct {
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Latitude   string `json:"lat"`
	Longitude  string `json:"long"`
	Timezone   string `json:"timezone"`
}

// LocationInfo is the flattened projection of a Location served to callers,
// with the occupant's company name and address pulled up to the top level.
type LocationInfo struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Identifier    string     `json:"identifier,omitempty"`
	FacilityCode  string     `json:"facility_code,omitempty"`
	Active        bool       `json:"active"`
	OccupiedBy    int        `json:"occupied_by,omitempty"`
	ClientCompany string     `json:"client_company,omitempty"`
	LocationType  string     `json:"location_type,omitempty"`
	Address1      string     `json:"address1,omitempty"`
	Address2      string     `json:"address2,omitempty"`
	City          string     `json:"city,omitempty"`
	State         string     `json:"state,omitempty"`
	PostalCode    string     `json:"postal_code,omitempty"`
	Country       string     `json:"country,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Email         string     `json:"email,omitempty"`
	Latitude      string     `json:"latitude,omitempty"`
	Longitude     string     `json:"longitude,omitempty"`
	Timezone      string     `json:"timezone,omitempty"`
	OpenDate      *time.Time `json:"open_date,omitempty"`
	CloseDate     *time.Time `json:"close_date,omitempty"`
}

// LocationsResponse is the store list envelope.
type LocationsResponse struct {
	Locations []Location `json:"stores"`
	Total     int        `json:"total"`
	Start     int        `json:"start"`
	Limit     int        `json:"limit"`
}

// SingleLocationResponse is the single-item envelope; the key stays "stores".
type SingleLocationResponse struct {
	Location *Location `json:"stores"`
}

// Invoice is a client invoice raised against a work order.
type Invoice struct {
	ID            int        `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	Amount        string     `json:"amount"`
	Status        string     `json:"status"`
	WorkOrderID   int        `json:"workorder_id"`
	VendorID      int        `json:"vendor_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// InvoicesResponse is the invoice list envelope.
type InvoicesResponse struct {
	Invoices   []Invoice   `json:"invoices"`
	Pagination *Pagination `json:"pagination"`
}

// SingleInvoiceResponse is the single-item envelope; the key stays plural.
type SingleInvoiceResponse struct {
	Invoice *Invoice `json:"invoices"`
}

// ErrorResponse is the gateway's error body shape.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
