package validation_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/topocheck/internal/topology"
	"github.com/imamik/topocheck/internal/validation"
)

// TestValidationSuite is the entry point for Ginkgo tests. The suite lives in
// the external test package so the dot-imports cannot shadow package names.
func TestValidationSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

var _ = Describe("Pipeline with resolved topologies", func() {
	var (
		stack    *topology.StackDefinition
		pipeline *validation.Pipeline
	)

	BeforeEach(func() {
		stack = topology.NewStackDefinition(
			topology.Ref{Name: "HDP", Version: "2.6"},
			[]string{"cluster-env"},
			[]topology.Service{
				{Name: "HDFS", ConfigTypes: []string{"core-site", "hdfs-site"}},
				{Name: "YARN", ConfigTypes: []string{"yarn-site"}},
			},
		)
		pipeline = validation.NewPipeline(nil)
	})

	resolve := func(blueprintTypes, clusterTypes []string) *topology.Topology {
		bpProps := topology.Properties{}
		for _, t := range blueprintTypes {
			bpProps[t] = map[string]string{}
		}
		clusterProps := topology.Properties{}
		for _, t := range clusterTypes {
			clusterProps[t] = map[string]string{}
		}
		bp := &topology.Blueprint{Name: "bp", Stack: stack.Ref(), Configuration: topology.NewConfig(bpProps, nil)}
		return topology.New("request", bp, stack, topology.NewConfig(clusterProps, nil))
	}

	Context("when every config type is declared by the stack", func() {
		It("passes", func() {
			report, err := pipeline.Run(context.Background(), resolve([]string{"hdfs-site"}, []string{"core-site", "yarn-site"}))
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Passed()).To(BeTrue())
			Expect(report.Topology).To(Equal("request"))
		})
	})

	Context("when there is no configuration at all", func() {
		It("passes", func() {
			_, err := pipeline.Run(context.Background(), resolve(nil, nil))
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Context("when the overrides contain unknown config types", func() {
		It("reports all of them at once", func() {
			report, err := pipeline.Run(context.Background(), resolve(nil, []string{"invalid-site-1", "invalid-default", "core-site"}))
			Expect(err).To(HaveOccurred())
			Expect(validation.IsUnknownConfigType(err)).To(BeTrue())
			Expect(validation.InvalidConfigTypes(err)).To(ConsistOf("invalid-site-1", "invalid-default"))
			Expect(report.Failures()).To(HaveLen(1))
		})
	})

	Context("when the blueprint itself uses an unknown config type", func() {
		It("rejects the topology", func() {
			_, err := pipeline.Run(context.Background(), resolve([]string{"hive-site"}, nil))
			Expect(validation.InvalidConfigTypes(err)).To(Equal([]string{"hive-site"}))
		})
	})
})
