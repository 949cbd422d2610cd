package image

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImage_ParseRef(t *testing.T) {
	type testCase struct {
		caseName        string
		imgRef          string
		expectedImgSpec ImageSpec
		expectedError   string
	}
	testCases := []testCase{
		{
			caseName: "index image reference with tag",
			imgRef:   "registry-proxy.engineering.redhat.com/rh-osbs/iib:599962",
			expectedImgSpec: ImageSpec{
				Transport:              "docker://",
				Reference:              "registry-proxy.engineering.redhat.com/rh-osbs/iib:599962",
				ReferenceWithTransport: "docker://registry-proxy.engineering.redhat.com/rh-osbs/iib:599962",
				Name:                   "registry-proxy.engineering.redhat.com/rh-osbs/iib",
				Domain:                 "registry-proxy.engineering.redhat.com",
				PathComponent:          "rh-osbs/iib",
				Tag:                    "599962",
			},
		},
		{
			caseName: "reference with registry port and tag",
			imgRef:   "localhost:5000/ubi8/ubi:latest",
			expectedImgSpec: ImageSpec{
				Transport:              "docker://",
				Reference:              "localhost:5000/ubi8/ubi:latest",
				ReferenceWithTransport: "docker://localhost:5000/ubi8/ubi:latest",
				Name:                   "localhost:5000/ubi8/ubi",
				Domain:                 "localhost:5000",
				PathComponent:          "ubi8/ubi",
				Tag:                    "latest",
			},
		},
		{
			caseName: "reference by digest",
			imgRef:   "registry.redhat.io/ubi8/ubi@sha256:44d75007b39e0e1bbf1bcfd0721245add54c54c3f83903f8926fb4bef6827aa2",
			expectedImgSpec: ImageSpec{
				Transport:              "docker://",
				Reference:              "registry.redhat.io/ubi8/ubi@sha256:44d75007b39e0e1bbf1bcfd0721245add54c54c3f83903f8926fb4bef6827aa2",
				ReferenceWithTransport: "docker://registry.redhat.io/ubi8/ubi@sha256:44d75007b39e0e1bbf1bcfd0721245add54c54c3f83903f8926fb4bef6827aa2",
				Name:                   "registry.redhat.io/ubi8/ubi",
				Domain:                 "registry.redhat.io",
				PathComponent:          "ubi8/ubi",
				Algorithm:              "sha256",
				Digest:                 "44d75007b39e0e1bbf1bcfd0721245add54c54c3f83903f8926fb4bef6827aa2",
			},
		},
		{
			caseName:      "reference without tag nor digest",
			imgRef:        "registry.redhat.io/ubi8/ubi",
			expectedError: "registry.redhat.io/ubi8/ubi unable to parse image correctly : tag and digest are empty",
		},
		{
			caseName:      "reference with invalid digest",
			imgRef:        "registry.redhat.io/ubi8/ubi@sha256:abc",
			expectedError: "registry.redhat.io/ubi8/ubi@sha256:abc unable to parse image correctly : invalid digest",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.caseName, func(t *testing.T) {
			imgSpec, err := ParseRef(tc.imgRef)
			if tc.expectedError != "" {
				require.EqualError(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedImgSpec, imgSpec)
		})
	}
}

func TestImage_IsImageByDigestOnly(t *testing.T) {
	byTag, err := ParseRef("brew.registry.redhat.io/rh-osbs/iib:599962")
	require.NoError(t, err)
	require.False(t, byTag.IsImageByDigestOnly())
	require.False(t, byTag.IsImageByDigest())

	byDigest, err := ParseRef("registry.redhat.io/ubi8/ubi@sha256:44d75007b39e0e1bbf1bcfd0721245add54c54c3f83903f8926fb4bef6827aa2")
	require.NoError(t, err)
	require.True(t, byDigest.IsImageByDigestOnly())
	require.True(t, byDigest.IsImageByDigest())
}

func TestImage_ComponentName(t *testing.T) {
	imgSpec, err := ParseRef("brew.registry.redhat.io/rh-osbs/iib:599962")
	require.NoError(t, err)
	require.Equal(t, "iib", imgSpec.ComponentName())
}
