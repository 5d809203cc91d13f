package model

import (
	"reflect"
	"testing"
	"time"
)

func TestStringArray_ScanPostgresLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want StringArray
	}{
		{`{}`, StringArray{}},
		{`{go,python}`, StringArray{"go", "python"}},
		{`{"machine learning","c,c++",NULL}`, StringArray{"machine learning", "c,c++", ""}},
		{`{"say \"hi\"","back\\slash"}`, StringArray{`say "hi"`, `back\slash`}},
	}
	for _, tt := range tests {
		var got StringArray
		if err := got.Scan([]byte(tt.in)); err != nil {
			t.Fatalf("Scan(%q) error: %v", tt.in, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Scan(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestStringArray_ValueIsScannable(t *testing.T) {
	in := StringArray{"Go", "c,c++", `quote"d`}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	var out StringArray
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("期望 %#v，实际 %#v", in, out)
	}
}

func TestStringArray_ScanMalformed(t *testing.T) {
	var a StringArray
	if err := a.Scan(`go,python`); err == nil {
		t.Error("期望缺少花括号时报错")
	}
	if err := a.Scan(`{"unterminated}`); err == nil {
		t.Error("期望未闭合引号时报错")
	}
}

func TestTeam_EffectiveSkillsRollup(t *testing.T) {
	team := Team{
		Skills: StringArray{"Python", "sql"},
		Members: []TeamMember{
			{Status: MemberStatusActive, Skills: StringArray{"python", "React"}},
			{Status: MemberStatusPending, Skills: StringArray{"Rust"}},
			{Status: MemberStatusActive, Skills: StringArray{" ", "SQL", "ML"}},
		},
	}

	got := team.EffectiveSkills()
	want := []string{"Python", "sql", "React", "ML"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
	if n := team.ActiveMemberCount(); n != 2 {
		t.Errorf("期望 2 名活跃成员，实际 %d", n)
	}
}

func TestDerivedStatus(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	if got := DerivedStatus(MemberStatusPending, &MembershipInvite{InviteExpiresAt: &past}, now); got != InviteStatusExpired {
		t.Errorf("期望 expired，实际 %s", got)
	}
	if got := DerivedStatus(MemberStatusPending, &MembershipInvite{InviteExpiresAt: &future}, now); got != MemberStatusPending {
		t.Errorf("期望 pending，实际 %s", got)
	}
	if got := DerivedStatus(MemberStatusActive, &MembershipInvite{InviteExpiresAt: &past}, now); got != MemberStatusActive {
		t.Errorf("期望 active，实际 %s", got)
	}
}
