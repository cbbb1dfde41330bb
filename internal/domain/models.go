package domain

import "k8s.io/apimachinery/pkg/runtime/schema"

// RecycleItem is a snapshot of a soft-deleted resource held by the recycle bin.
type RecycleItem struct {
	Name             string `json:"name"`
	ObjectKey        string `json:"objectKey"`
	ObjectAPIVersion string `json:"objectAPIVersion"`
	ObjectKind       string `json:"objectKind"`
	ObjectNamespace  string `json:"objectNamespace,omitempty"` // empty for cluster-scoped objects
	Age              string `json:"age"`
}

// ClusterScoped reports whether the recycled object had no namespace.
func (i RecycleItem) ClusterScoped() bool {
	return i.ObjectNamespace == ""
}

// RecyclePolicy selects which deleted resources are captured into the recycle bin.
type RecyclePolicy struct {
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Resource   string   `json:"resource"`
	Namespaces []string `json:"namespaces"`
	Age        string   `json:"age"`
}

// GroupResource returns the targeted group/resource; an empty group is the core group.
func (p RecyclePolicy) GroupResource() schema.GroupResource {
	return schema.GroupResource{Group: p.Group, Resource: p.Resource}
}

// AllNamespaces reports whether the policy applies cluster-wide.
func (p RecyclePolicy) AllNamespaces() bool {
	return len(p.Namespaces) == 0
}

// PolicySpec is the body sent to create a RecyclePolicy.
type PolicySpec struct {
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Resource   string   `json:"resource"`
	Namespaces []string `json:"namespaces"`
}
