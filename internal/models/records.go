package models

import "time"

// Project is a technology-transfer project scoped to one campus college.
type Project struct {
	ID              string     `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Description     *string    `db:"description" json:"description,omitempty"`
	Leader          *string    `db:"leader" json:"leader,omitempty"`
	Members         *string    `db:"members" json:"members,omitempty"`
	AgencyPartner   *string    `db:"agency_partner" json:"agency_partner,omitempty"`
	Category        *string    `db:"category" json:"category,omitempty"`
	StartDate       *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate         *time.Time `db:"end_date" json:"end_date,omitempty"`
	CampusCollegeID string     `db:"campus_college_id" json:"campus_college_id"`
	UserID          *string    `db:"user_id" json:"user_id,omitempty"`
	IsArchived      bool       `db:"is_archived" json:"is_archived"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
	Relations
}

func (p *Project) RelationKeys() RelationKeys {
	return RelationKeys{UserID: p.UserID, CampusCollegeID: &p.CampusCollegeID}
}

func (p *Project) Related() *Relations { return &p.Relations }

// Award records a recognition received by a campus college.
type Award struct {
	ID              string     `db:"id" json:"id"`
	AwardName       string     `db:"award_name" json:"award_name"`
	Description     *string    `db:"description" json:"description,omitempty"`
	AwardingBody    *string    `db:"awarding_body" json:"awarding_body,omitempty"`
	PeopleInvolved  *string    `db:"people_involved" json:"people_involved,omitempty"`
	Level           *string    `db:"level" json:"level,omitempty"`
	DateReceived    *time.Time `db:"date_received" json:"date_received,omitempty"`
	CampusCollegeID string     `db:"campus_college_id" json:"campus_college_id"`
	UserID          *string    `db:"user_id" json:"user_id,omitempty"`
	IsArchived      bool       `db:"is_archived" json:"is_archived"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
	Relations
}

func (a *Award) RelationKeys() RelationKeys {
	return RelationKeys{UserID: a.UserID, CampusCollegeID: &a.CampusCollegeID}
}

func (a *Award) Related() *Relations { return &a.Relations }

// InternationalPartner records an activity with a foreign partner agency.
type InternationalPartner struct {
	ID                   string     `db:"id" json:"id"`
	AgencyPartner        string     `db:"agency_partner" json:"agency_partner"`
	Location             *string    `db:"location" json:"location,omitempty"`
	ActivityConducted    *string    `db:"activity_conducted" json:"activity_conducted,omitempty"`
	Narrative            *string    `db:"narrative" json:"narrative,omitempty"`
	StartDate            *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate              *time.Time `db:"end_date" json:"end_date,omitempty"`
	NumberOfParticipants *int64     `db:"number_of_participants" json:"number_of_participants,omitempty"`
	NumberOfCommittee    *int64     `db:"number_of_committee" json:"number_of_committee,omitempty"`
	CampusCollegeID      string     `db:"campus_college_id" json:"campus_college_id"`
	UserID               *string    `db:"user_id" json:"user_id,omitempty"`
	IsArchived           bool       `db:"is_archived" json:"is_archived"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
	Relations
}

func (p *InternationalPartner) RelationKeys() RelationKeys {
	return RelationKeys{UserID: p.UserID, CampusCollegeID: &p.CampusCollegeID}
}

func (p *InternationalPartner) Related() *Relations { return &p.Relations }

// Modality is a media channel through which a project was disseminated.
type Modality struct {
	ID            string    `db:"id" json:"id"`
	ProjectID     string    `db:"project_id" json:"project_id"`
	Modality      string    `db:"modality" json:"modality"`
	TVChannel     *string   `db:"tv_channel" json:"tv_channel,omitempty"`
	Radio         *string   `db:"radio" json:"radio,omitempty"`
	OnlineLink    *string   `db:"online_link" json:"online_link,omitempty"`
	TimeAir       *string   `db:"time_air" json:"time_air,omitempty"`
	Period        *string   `db:"period" json:"period,omitempty"`
	PartnerAgency *string   `db:"partner_agency" json:"partner_agency,omitempty"`
	HostedBy      *string   `db:"hosted_by" json:"hosted_by,omitempty"`
	UserID        *string   `db:"user_id" json:"user_id,omitempty"`
	IsArchived    bool      `db:"is_archived" json:"is_archived"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
	Relations
}

func (m *Modality) RelationKeys() RelationKeys {
	return RelationKeys{UserID: m.UserID, ProjectID: &m.ProjectID}
}

func (m *Modality) Related() *Relations { return &m.Relations }

// ImpactAssessment measures the beneficiaries reached by a project.
type ImpactAssessment struct {
	ID                     string    `db:"id" json:"id"`
	ProjectID              string    `db:"project_id" json:"project_id"`
	Beneficiary            string    `db:"beneficiary" json:"beneficiary"`
	GeographicCoverage     *string   `db:"geographic_coverage" json:"geographic_coverage,omitempty"`
	NumDirectBeneficiary   *int64    `db:"num_direct_beneficiary" json:"num_direct_beneficiary,omitempty"`
	NumIndirectBeneficiary *int64    `db:"num_indirect_beneficiary" json:"num_indirect_beneficiary,omitempty"`
	UserID                 *string   `db:"user_id" json:"user_id,omitempty"`
	IsArchived             bool      `db:"is_archived" json:"is_archived"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time `db:"updated_at" json:"updated_at"`
	Relations
}

func (i *ImpactAssessment) RelationKeys() RelationKeys {
	return RelationKeys{UserID: i.UserID, ProjectID: &i.ProjectID}
}

func (i *ImpactAssessment) Related() *Relations { return &i.Relations }

// Resolution is a board resolution backing a partnership agreement.
type Resolution struct {
	ID                string     `db:"id" json:"id"`
	ResolutionNumber  string     `db:"resolution_number" json:"resolution_number"`
	PartnerAgency     *string    `db:"partner_agency" json:"partner_agency,omitempty"`
	Description       *string    `db:"description" json:"description,omitempty"`
	YearOfEffectivity *time.Time `db:"year_of_effectivity" json:"year_of_effectivity,omitempty"`
	Expiration        *time.Time `db:"expiration" json:"expiration,omitempty"`
	UserID            *string    `db:"user_id" json:"user_id,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
	Statuses          []string   `db:"-" json:"statuses"`
	Relations
}

func (r *Resolution) RelationKeys() RelationKeys { return RelationKeys{UserID: r.UserID} }

func (r *Resolution) Related() *Relations { return &r.Relations }
