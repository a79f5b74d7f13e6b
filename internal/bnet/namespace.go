package bnet

import (
	"fmt"
	"net/url"
	"path"
	"strconv"

	"github.com/osse101/FreeLunch_Go/internal/domain"
)

// endpointInfo describes which namespace family an endpoint lives in and which versions serve it
type endpointInfo struct {
	namespace domain.NamespaceType
	versions  []domain.GameVersion
}

var (
	retailOnly  = []domain.GameVersion{domain.GameVersionRetail}
	classicOnly = []domain.GameVersion{domain.GameVersionClassic}
	allVersions = []domain.GameVersion{domain.GameVersionRetail, domain.GameVersionClassic}
)

var endpoints = map[string]endpointInfo{
	EndpointProfessionIndex:   {domain.NamespaceStatic, retailOnly},
	EndpointProfession:        {domain.NamespaceStatic, retailOnly},
	EndpointProfessionMedia:   {domain.NamespaceStatic, retailOnly},
	EndpointSkillTier:         {domain.NamespaceStatic, retailOnly},
	EndpointRecipe:            {domain.NamespaceStatic, retailOnly},
	EndpointRecipeMedia:       {domain.NamespaceStatic, retailOnly},
	EndpointItem:              {domain.NamespaceStatic, allVersions},
	EndpointItemMedia:         {domain.NamespaceStatic, allVersions},
	EndpointItemClassIndex:    {domain.NamespaceStatic, allVersions},
	EndpointItemSubclass:      {domain.NamespaceStatic, allVersions},
	EndpointRegionIndex:       {domain.NamespaceDynamic, allVersions},
	EndpointRegion:            {domain.NamespaceDynamic, allVersions},
	EndpointRealmIndex:        {domain.NamespaceDynamic, allVersions},
	EndpointRealm:             {domain.NamespaceDynamic, allVersions},
	EndpointConnectedRealmIdx: {domain.NamespaceDynamic, allVersions},
	EndpointConnectedRealm:    {domain.NamespaceDynamic, allVersions},
	EndpointAuctionHouseIndex: {domain.NamespaceDynamic, classicOnly},
	EndpointAuctions:          {domain.NamespaceDynamic, classicOnly},
}

// Namespace builds the upstream namespace parameter, e.g. static-classic-us
func Namespace(ns domain.NamespaceType, version domain.GameVersion, region string) (string, error) {
	if !ns.Valid() {
		return "", fmt.Errorf("%w: namespace type %q", domain.ErrUnsupportedNamespace, ns)
	}
	switch version {
	case domain.GameVersionRetail:
		return fmt.Sprintf("%s-%s", ns, region), nil
	case domain.GameVersionClassic:
		return fmt.Sprintf("%s%s-%s", ns, namespaceClassicSuffix, region), nil
	default:
		return "", fmt.Errorf("%w: game version %q", domain.ErrUnsupportedNamespace, version)
	}
}

// Supports reports whether endpoint can be called for version
func Supports(endpoint string, version domain.GameVersion) bool {
	info, ok := endpoints[endpoint]
	if !ok {
		return false
	}
	for _, v := range info.versions {
		if v == version {
			return true
		}
	}
	return false
}

// resolveNamespace validates the endpoint/version pair and returns the namespace to send
func resolveNamespace(endpoint string, version domain.GameVersion, region string) (string, error) {
	info, ok := endpoints[endpoint]
	if !ok {
		return "", fmt.Errorf("%w: unknown endpoint %q", domain.ErrUnsupportedNamespace, endpoint)
	}
	if !Supports(endpoint, version) {
		return "", fmt.Errorf("%w: %s does not serve %s", domain.ErrUnsupportedNamespace, endpoint, version)
	}
	return Namespace(info.namespace, version, region)
}

// IDFromHref extracts the trailing numeric path segment of an upstream link
func IDFromHref(href string) (int, error) {
	u, err := url.Parse(href)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", domain.ErrMalformedResponse, ErrMsgUnexpectedHref, href, err)
	}
	id, err := strconv.Atoi(path.Base(u.Path))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", domain.ErrMalformedResponse, ErrMsgUnexpectedHref, href)
	}
	return id, nil
}
