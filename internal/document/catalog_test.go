package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCatalog_EveryTypeHasOneSpec(t *testing.T) {
	all := []DocType{
		ResidentDeungbon, ResidentChobon, FamilyRelation, FamilyRelationDetail, BasicCert,
		MarriageCert, SealCert, LandReg, BuildingReg, TaxLocal, DriverHistory, ImmigrationLog,
		SchoolUniv, SchoolHigh, SchoolMiddle, SchoolElem, IncomeCert, PensionCert, VaccineCert,
		HealthInsurance, None,
	}
	require.Len(t, Catalog(), len(all))
	for _, dt := range all {
		spec, ok := Lookup(dt)
		require.True(t, ok, dt)
		assert.Equal(t, dt, spec.Type)
		assert.NotEmpty(t, spec.Label)
		for _, f := range spec.Required {
			assert.NotEqual(t, "unknown", f.String(), "%s has unnamed field", dt)
		}
	}
}

func TestCatalog_ListSelectionTypes(t *testing.T) {
	for _, spec := range Catalog() {
		if spec.IsListSelection {
			assert.Len(t, spec.Headers(), 3, spec.Type)
		}
	}
	tax, _ := Lookup(TaxLocal)
	assert.Equal(t, []string{"납세일자", "세목", "금액"}, tax.Headers())
	seal, _ := Lookup(SealCert)
	assert.Equal(t, DefaultListHeaders, seal.Headers())
}

func TestCatalog_ChobonRequiredOrder(t *testing.T) {
	spec, _ := Lookup(ResidentChobon)

	assert.Equal(t,
		[]string{"name", "rrin", "address", "detailOption", "phoneNumber", "copies", "purposeDetail"},
		spec.RequiredKeys())
	assert.True(t, spec.HasOption(OptionPastAddress))
	assert.False(t, spec.HasOption(OptionHouseholdRRIN))
}

func TestCatalog_IncomeCertHasPeriodLast(t *testing.T) {
	spec, _ := Lookup(IncomeCert)

	assert.True(t, spec.HasPeriod)
	assert.Equal(t, FieldPeriod, spec.Required[len(spec.Required)-1])

	seal, _ := Lookup(SealCert)
	assert.NotContains(t, seal.Required, FieldPeriod, "shared required list must not be mutated")
}

func TestBuildCatalog_PanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		buildCatalog([]Spec{{Type: SealCert}, {Type: SealCert}})
	})
	assert.Panics(t, func() {
		buildCatalog([]Spec{{Type: SealCert, Required: []FieldKind{FieldKind(99)}}})
	})
}

func TestIssuable(t *testing.T) {
	issuable := Issuable()

	assert.Len(t, issuable, len(Catalog())-2)
	assert.NotContains(t, issuable, None)
	assert.NotContains(t, issuable, FamilyRelationDetail)
	assert.Contains(t, issuable, ResidentChobon)
}

func TestParseDocType(t *testing.T) {
	dt, err := ParseDocType(" vaccine_cert ")
	require.NoError(t, err)
	assert.Equal(t, VaccineCert, dt)

	_, err = ParseDocType("passport")
	assert.Error(t, err)
}

func TestLabelOf(t *testing.T) {
	assert.Equal(t, "주민등록표(초본)", LabelOf(ResidentChobon))
	assert.Equal(t, "passport", LabelOf(DocType("passport")))
}

func TestFieldLabels(t *testing.T) {
	want := map[FieldKind]string{
		FieldName: "성명", FieldNationalID: "주민번호", FieldAddress: "주소/상세주소",
		FieldPurpose: "용도", FieldPurposeDetail: "상세용도", FieldTargetName: "대상자",
		FieldRelationship: "관계", FieldDetailOption: "상세옵션", FieldPhoneNumber: "연락처",
		FieldCopies: "부수", FieldBaseAddress: "등록기준지", FieldPeriod: "기간",
	}
	assert.Len(t, AllFields(), len(want))
	for k, label := range want {
		assert.Equal(t, label, k.Label())
	}
}

func TestDeriveDetailOption(t *testing.T) {
	assert.Equal(t, DetailIncluded, DeriveDetailOption(true, DetailExcluded))
	assert.Equal(t, DetailExcluded, DeriveDetailOption(false, DetailExcluded))
	assert.Equal(t, DetailDefault, DeriveDetailOption(false, DetailIncluded))
	assert.Equal(t, DetailDefault, DeriveDetailOption(false, ""))
}

func TestCopies_UnmarshalJSON(t *testing.T) {
	var doc struct {
		A Copies `json:"a"`
		B Copies `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":2,"b":" 2 "}`), &doc))
	assert.Equal(t, doc.A, doc.B)

	assert.Error(t, json.Unmarshal([]byte(`{"a":"two"}`), &doc))
	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &doc))
}

func TestCopies_UnmarshalYAML(t *testing.T) {
	var doc struct {
		A Copies `yaml:"a"`
		B Copies `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 2\nb: \" 2 \"\n"), &doc))
	assert.Equal(t, Copies(2), doc.A)
	assert.Equal(t, doc.A, doc.B)

	assert.Error(t, yaml.Unmarshal([]byte("a: two\n"), &doc))
	assert.Error(t, yaml.Unmarshal([]byte("a: [2]\n"), &doc))
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	before, ok := Lookup(SealCert)
	require.True(t, ok)

	for _, spec := range Catalog() {
		if len(spec.Required) > 0 {
			spec.Required[0] = FieldPeriod
		}
		if len(spec.Options) > 0 {
			spec.Options[0] = SpecOption("tampered")
		}
	}
	looked, _ := Lookup(SealCert)
	if len(looked.Required) > 0 {
		looked.Required[0] = FieldPeriod
	}

	after, _ := Lookup(SealCert)
	assert.Equal(t, before, after)
	assert.NotEqual(t, FieldPeriod, Catalog()[0].Required[0])
}

func TestDisplayStrings(t *testing.T) {
	assert.Equal(t, "상세(Detailed)", VariantDetailed.Display())
	assert.Equal(t, "일반(General)", VariantGeneral.Display())
	assert.Equal(t, "완전공개", DisclosureUnmasked.Display())
	assert.Equal(t, "비공개", DisclosureMasked.Display())
	assert.Equal(t, "전자문서지갑", DeliveryElectronicWallet.Display())
	assert.Equal(t, "carrier_pigeon", DeliveryMethod("carrier_pigeon").Display())
	assert.False(t, DeliveryMethod("carrier_pigeon").Valid())
}

func TestIsPlayer(t *testing.T) {
	assert.True(t, IsPlayer("김공무", "920315"))
	assert.False(t, IsPlayer("김공무", "920316"))
	assert.False(t, IsPlayer(" 김공무", "920315"))
}
