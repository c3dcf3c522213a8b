package domain

import (
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain/reviews"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain/tenants"
)

const (
	OpeningUsageTable   = reviews.OpeningUsageTable
	EndingUsageTable    = reviews.EndingUsageTable
	NarrativeUsageTable = reviews.NarrativeUsageTable
)

type ReviewMemory = reviews.ReviewMemory
type FragmentUsage = reviews.FragmentUsage

type Client = tenants.Client
type ClientType = tenants.ClientType
type QRToken = tenants.QRToken
type QRReviewLog = tenants.QRReviewLog
