package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"leadportal/internal/model"

	"github.com/google/uuid"
)

func TestCreateClientSeedsGrids(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo, &fakeTxManager{})

	client, err := svc.CreateClient(context.Background(), CreateClientRequest{
		CompanyName: "Acme Corp",
		ContactName: "Jo Smith",
		Email:       "jo@acme.test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.Status != model.ClientStatusActive {
		t.Errorf("Status = %q, want default Active", client.Status)
	}
	wantNumber := fmt.Sprintf("CL-%d-0001", time.Now().Year())
	if client.ClientNumber != wantNumber {
		t.Errorf("ClientNumber = %q, want %q", client.ClientNumber, wantNumber)
	}
	if client.Marketing == nil {
		t.Error("expected default marketing channels grid")
	}
	if client.SalesTools == nil {
		t.Error("expected default sales tools grid")
	}
}

func TestUpdateClientPatchesOnlyProvidedFields(t *testing.T) {
	existing := &model.Client{
		ID:          uuid.New(),
		CompanyName: "Acme Corp",
		ContactName: "Jo Smith",
		Email:       "jo@acme.test",
		Status:      model.ClientStatusActive,
		Phone:       "555-0100",
	}
	repo := newFakeClientRepo(existing)
	svc := NewClientService(repo, &fakeTxManager{})

	newName := "Acme Corporation"
	updated, err := svc.UpdateClient(context.Background(), existing.ID.String(), UpdateClientRequest{
		CompanyName: &newName,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.CompanyName != "Acme Corporation" {
		t.Errorf("CompanyName = %q, want updated value", updated.CompanyName)
	}
	if updated.Phone != "555-0100" || updated.Email != "jo@acme.test" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestGetClientInvalidID(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), &fakeTxManager{})

	if _, err := svc.GetClient(context.Background(), "nope"); err == nil {
		t.Error("expected error for malformed id")
	}
	if _, err := svc.GetClient(context.Background(), uuid.New().String()); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestUpdateMarketingChannels(t *testing.T) {
	existing := &model.Client{ID: uuid.New(), CompanyName: "Acme Corp"}
	repo := newFakeClientRepo(existing)
	svc := NewClientService(repo, &fakeTxManager{})

	enabled := true
	channels, err := svc.UpdateMarketingChannels(context.Background(), existing.ID.String(), UpdateMarketingChannelsRequest{
		SEO:       &enabled,
		ColdEmail: &enabled,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !channels.SEO || !channels.ColdEmail {
		t.Errorf("flags not set: %+v", channels)
	}
	if channels.SocialMediaAds {
		t.Error("untouched flag flipped on")
	}
	if channels.ClientID != existing.ID {
		t.Errorf("ClientID = %s, want %s", channels.ClientID, existing.ID)
	}
}
