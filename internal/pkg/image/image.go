package image

import (
	"fmt"
	"strings"

	digest "github.com/opencontainers/go-digest"
)

const (
	dockerProtocol  = "docker://"
	errMessageImage = "%s unable to parse image correctly"
)

// ImageSpec is the decomposed form of a container image reference
// (registry/path[:tag][@digest]), with or without a transport prefix.
type ImageSpec struct {
	Transport              string
	Reference              string
	ReferenceWithTransport string
	Name                   string
	Domain                 string
	PathComponent          string
	Tag                    string
	Algorithm              string
	Digest                 string
}

// ParseRef expects the image reference without the transport prefix, and
// assumes docker:// when none is present.
func ParseRef(imgRef string) (ImageSpec, error) {
	var imgSpec ImageSpec

	if strings.Contains(imgRef, "://") {
		imgSpec.ReferenceWithTransport = imgRef
		imgSplit := strings.Split(imgRef, "://")
		if len(imgSplit) == 2 {
			imgSpec.Transport = imgSplit[0] + "://"
			imgSpec.Reference = imgSplit[1]
			imgSpec.Name = imgSplit[1]
		}
	} else {
		imgSpec.Transport = dockerProtocol
		imgSpec.Reference = imgRef
		imgSpec.Name = imgRef
		imgSpec.ReferenceWithTransport = imgSpec.Transport + imgRef
	}

	if strings.Contains(imgSpec.Name, "@") {
		imgSplit := strings.Split(imgSpec.Name, "@")
		if len(imgSplit) > 1 {
			validDigest, err := digest.Parse(imgSplit[1])
			if err != nil {
				return ImageSpec{}, fmt.Errorf("%s unable to parse image correctly : invalid digest", imgRef)
			}
			imgSpec.Digest = validDigest.Encoded()
			imgSpec.Algorithm = validDigest.Algorithm().String()
			imgSpec.Name = imgSplit[0]
		}
	}

	if strings.Contains(imgSpec.Name, ":") && imgSpec.Transport == dockerProtocol {
		lastColonIndex := strings.LastIndex(imgSpec.Name, ":")
		indexOfDomainPathSeparation := strings.Index(imgSpec.Name, "/")
		// a colon before the first / belongs to the registry port, not a tag
		if indexOfDomainPathSeparation < 0 || lastColonIndex > indexOfDomainPathSeparation {
			imgSpec.Tag = imgSpec.Name[lastColonIndex+1:]
			imgSpec.Name = imgSpec.Name[:lastColonIndex]
		}
	}

	if imgSpec.Name == "" {
		return ImageSpec{}, fmt.Errorf("unknown image : reference name is empty")
	}
	if imgSpec.Transport == dockerProtocol && imgSpec.Tag == "" && imgSpec.Digest == "" {
		return ImageSpec{}, fmt.Errorf(errMessageImage+" : tag and digest are empty", imgRef)
	}

	if imgSpec.Transport == dockerProtocol {
		imageNameComponents := strings.Split(imgSpec.Name, "/")
		if len(imageNameComponents) >= 2 {
			imgSpec.PathComponent = strings.Join(imageNameComponents[1:], "/")
			imgSpec.Domain = imageNameComponents[0]
		} else if len(imageNameComponents) == 1 {
			imgSpec.PathComponent = imageNameComponents[0]
		} else {
			return ImageSpec{}, fmt.Errorf(errMessageImage, imgRef)
		}
	} else {
		imgSpec.PathComponent = imgSpec.Name
	}

	return imgSpec, nil
}

func (i ImageSpec) IsImageByDigest() bool {
	return i.Digest != ""
}

func (i ImageSpec) IsImageByDigestOnly() bool {
	return i.Tag == "" && i.Digest != ""
}

// ComponentName returns the last path component of the repository.
func (i ImageSpec) ComponentName() string {
	if strings.Contains(i.PathComponent, "/") {
		pathComponents := strings.Split(i.PathComponent, "/")
		return pathComponents[len(pathComponents)-1]
	}
	return i.PathComponent
}
